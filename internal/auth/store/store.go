package store

import (
	"context"
	"errors"

	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. Sub-repositories keep concerns tidy and make the
// directory substitutable in tests.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back when fn fails
	// and committing otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users is the credential directory. "Active" in the lookup methods means
// is_active = 1 AND deleted_at IS NULL; inactive and soft-deleted records are
// invisible to authentication.
type Users interface {
	// GetUserByID returns a user by id regardless of active state.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// FindActiveByEmail is used during the password grant.
	FindActiveByEmail(ctx context.Context, email string) (domain.User, error)

	// FindActiveByPhone looks up by normalized phone during OTP flows.
	FindActiveByPhone(ctx context.Context, phone string) (domain.User, error)

	// ExistsByEmail reports an identifier collision, deleted records included.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// FirstActiveByRole returns the active user with the lowest id holding
	// the given role. ULIDs sort by creation time, so lowest id is oldest.
	FirstActiveByRole(ctx context.Context, role domain.Role) (domain.User, error)

	// FirstActive returns the active user with the lowest id of any role.
	FirstActive(ctx context.Context) (domain.User, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}
