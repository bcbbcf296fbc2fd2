package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/domain"
	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/store"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/cryptox"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/idx"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/slogx"
)

// RegisterParams carries the fields a new account may supply. Role and
// Gender are free-form strings validated against their closed sets.
type RegisterParams struct {
	Email     string
	Password  string
	Phone     string
	Role      string
	Gender    string
	BirthDate *time.Time
}

// Register creates a new credential record and logs the user straight in.
// The response shape matches Login.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (domain.AuthResult, error) {
	l := slogx.FromContext(ctx)

	email := strings.TrimSpace(p.Email)

	role, known := domain.ParseRole(p.Role)
	if p.Role != "" && !known {
		l.Warn("unknown role on registration, defaulting to patient", "role", p.Role)
	}

	gender, ok := domain.ParseGender(p.Gender)
	if !ok {
		l.Warn("invalid gender on registration, storing as null", "gender", p.Gender)
	}

	// Birth dates arrive in whatever zone the client used; persist in UTC so
	// the same instant always reads back identically.
	var birthDate *time.Time
	if p.BirthDate != nil {
		utc := p.BirthDate.UTC()
		birthDate = &utc
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.AuthResult{}, internalErr(err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Phone:        domain.NormalizePhone(p.Phone),
		PasswordHash: hash,
		Role:         role,
		Gender:       gender,
		BirthDate:    birthDate,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The uniqueness check and the insert share one transaction so two
	// concurrent registrations of the same email cannot both pass the check.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		exists, err := tx.Users().ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return ErrUserExists
		}
		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, ErrUserExists) || errors.Is(err, store.ErrAlreadyExists) {
			return domain.AuthResult{}, ErrUserExists
		}
		return domain.AuthResult{}, internalErr(fmt.Errorf("failed to persist user: %w", err))
	}

	return s.issueFor(ctx, user)
}
