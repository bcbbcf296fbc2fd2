package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is used when the Signer is constructed without an
// explicit lifetime.
const DefaultAccessTokenTTL = 60 * time.Minute

var ErrInvalidToken = errors.New("jwtx: invalid token")

// Signer mints and verifies HMAC-SHA256 access tokens with a single
// process-wide symmetric key. The key is read-only after construction, so a
// Signer is safe for concurrent use.
type Signer struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Issue signs a token for the given subject and role. The expiry is a fixed
// offset from the issue time.
func (s *Signer) Issue(userID, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl())

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.Issuer,
			Audience:  jwt.ClaimStrings{s.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, expiresAt, nil
}

// Verify parses the token and checks signature, issuer, audience and expiry
// with zero clock-skew tolerance. Only HS256 is accepted; an alg header of
// "none" or any asymmetric scheme fails closed.
func (s *Signer) Verify(raw string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) { return s.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.Issuer),
		jwt.WithAudience(s.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

// Validate reduces Verify to a boolean predicate. There are no
// partial-validity states: any failure is false.
func (s *Signer) Validate(raw string) bool {
	_, err := s.Verify(raw)
	return err == nil
}

func (s *Signer) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultAccessTokenTTL
	}
	return s.TTL
}
