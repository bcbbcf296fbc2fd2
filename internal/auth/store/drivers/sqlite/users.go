package sqlite

import (
	"context"
	"database/sql"

	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/domain"
)

const userColumns = `id, email, phone, password_hash, role, gender, birth_date,
	is_active, deleted_at, created_at, updated_at`

// activeFilter matches what the directory contract calls "active".
const activeFilter = `is_active = 1 AND deleted_at IS NULL`

type usersRepo struct {
	q querier
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) FindActiveByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? AND `+activeFilter, email)
	return scanUser(row)
}

func (r *usersRepo) FindActiveByPhone(ctx context.Context, phone string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE phone = ? AND `+activeFilter, phone)
	return scanUser(row)
}

func (r *usersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE email = ?`, email).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	var gender sql.NullString
	if u.Gender != nil {
		gender = sql.NullString{String: u.Gender.String(), Valid: true}
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Email,
		u.Phone,
		u.PasswordHash,
		u.Role.String(),
		gender,
		encodeTimePtr(u.BirthDate),
		boolToInt(u.IsActive),
		encodeTimePtr(u.DeletedAt),
		encodeTime(u.CreatedAt),
		encodeTime(u.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *usersRepo) FirstActiveByRole(ctx context.Context, role domain.Role) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE role = ? AND `+activeFilter+`
		 ORDER BY id ASC LIMIT 1`, role.String())
	return scanUser(row)
}

func (r *usersRepo) FirstActive(ctx context.Context) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE `+activeFilter+`
		 ORDER BY id ASC LIMIT 1`)
	return scanUser(row)
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(1) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u         domain.User
		role      string
		gender    sql.NullString
		birthDate sql.NullString
		isActive  int64
		deletedAt sql.NullString
		createdAt string
		updatedAt string
	)

	err := row.Scan(
		&u.ID, &u.Email, &u.Phone, &u.PasswordHash, &role, &gender,
		&birthDate, &isActive, &deletedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	// Role values in the database are written from the closed set only, so a
	// parse miss here would mean corrupted data; the patient fallback keeps
	// the row readable regardless.
	u.Role, _ = domain.ParseRole(role)
	if gender.Valid {
		g, _ := domain.ParseGender(gender.String)
		u.Gender = g
	}
	u.IsActive = isActive != 0

	if u.BirthDate, err = decodeTimePtr(birthDate); err != nil {
		return domain.User{}, err
	}
	if u.DeletedAt, err = decodeTimePtr(deletedAt); err != nil {
		return domain.User{}, err
	}
	if u.CreatedAt, err = decodeTime(createdAt); err != nil {
		return domain.User{}, err
	}
	if u.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return domain.User{}, err
	}

	return u, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
