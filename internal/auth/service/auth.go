package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/domain"
	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/otp"
	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/sms"
	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/store"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/cryptox"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/jwtx"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/slogx"
)

// CodeStore is the OTP cache capability the orchestrator needs. It is an
// injected dependency, never a singleton, so tests can substitute a fake with
// a controllable clock.
type CodeStore interface {
	Put(ctx context.Context, phone, code string, ttl time.Duration) error
	Consume(ctx context.Context, phone, code string) (bool, error)
}

var _ CodeStore = (*otp.Store)(nil)

// AuthService composes the directory, password hashing, token issuance, the
// OTP cache and the SMS channel into the user-facing login flows. It holds no
// mutable state of its own; every request is independent.
type AuthService struct {
	Store  store.Store
	Codes  CodeStore
	Sender sms.Sender
	Tokens *jwtx.Signer

	// OtpTTL bounds code validity; zero means otp.DefaultTTL.
	OtpTTL time.Duration
	// CodeDigits is the OTP length; zero means 4.
	CodeDigits int
	// BypassEnabled gates the empty-phone admin login shortcut. It exists for
	// test environments and must stay off in production.
	BypassEnabled bool
}

// Login performs the password grant. Missing, inactive and deleted users are
// indistinguishable from a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.AuthResult, error) {
	email = strings.TrimSpace(email)

	user, err := s.Store.Users().FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.AuthResult{}, ErrInvalidCredentials
		}
		return domain.AuthResult{}, internalErr(err)
	}

	if !cryptox.VerifyPassword(password, user.PasswordHash) {
		return domain.AuthResult{}, ErrInvalidCredentials
	}

	return s.issueFor(ctx, user)
}

// GetUserInfo returns the sanitized record for a known user id.
func (s *AuthService) GetUserInfo(ctx context.Context, userID string) (domain.UserInfo, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserInfo{}, ErrUserNotFound
		}
		return domain.UserInfo{}, internalErr(err)
	}
	return user.Info(), nil
}

// ValidateToken reports whether the token is currently valid. Signature,
// issuer, audience and expiry are all checked; there is no partial validity.
func (s *AuthService) ValidateToken(token string) bool {
	return s.Tokens.Validate(token)
}

func (s *AuthService) issueFor(ctx context.Context, user domain.User) (domain.AuthResult, error) {
	token, expiresAt, err := s.Tokens.Issue(user.ID, user.Role.String())
	if err != nil {
		slogx.FromContext(ctx).Error("token issuance failed", "err", err, "user_id", user.ID)
		return domain.AuthResult{}, internalErr(err)
	}

	return domain.AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Info(),
	}, nil
}

func (s *AuthService) otpTTL() time.Duration {
	if s.OtpTTL <= 0 {
		return otp.DefaultTTL
	}
	return s.OtpTTL
}

func (s *AuthService) codeDigits() int {
	if s.CodeDigits <= 0 {
		return 4
	}
	return s.CodeDigits
}
