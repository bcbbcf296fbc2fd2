package jwtx

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testSigner() *Signer {
	return &Signer{
		Secret:   []byte("test-secret-key-for-unit-tests"),
		Issuer:   "clinic-auth",
		Audience: "clinic-api",
		TTL:      time.Hour,
	}
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	s := testSigner()

	token, expiresAt, err := s.Issue("user-1", "doctor")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "doctor", claims.Role)
	require.Equal(t, "clinic-auth", claims.Issuer)

	require.True(t, s.Validate(token))
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	s := testSigner()

	// A negative TTL on the Signer clamps to the default, so an expired token
	// has to be signed by hand with claims already in the past.
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    s.Issuer,
			Audience:  jwt.ClaimStrings{s.Audience},
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		Role: "patient",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.False(t, s.Validate(token))
}

func TestIssueClampsNonPositiveTTL(t *testing.T) {
	t.Parallel()

	s := testSigner()
	s.TTL = -time.Minute

	token, expiresAt, err := s.Issue("user-1", "patient")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(DefaultAccessTokenTTL), expiresAt, 5*time.Second)
	require.True(t, s.Validate(token))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	s := testSigner()
	token, _, err := s.Issue("user-1", "patient")
	require.NoError(t, err)

	other := testSigner()
	other.Secret = []byte("a completely different secret")
	require.False(t, other.Validate(token))
}

func TestVerifyRejectsWrongIssuerOrAudience(t *testing.T) {
	t.Parallel()

	s := testSigner()
	token, _, err := s.Issue("user-1", "patient")
	require.NoError(t, err)

	badIssuer := testSigner()
	badIssuer.Issuer = "someone-else"
	require.False(t, badIssuer.Validate(token))

	badAudience := testSigner()
	badAudience.Audience = "other-api"
	require.False(t, badAudience.Validate(token))
}

func TestVerifyRejectsUnsignedAlg(t *testing.T) {
	t.Parallel()

	s := testSigner()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    s.Issuer,
			Audience:  jwt.ClaimStrings{s.Audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	require.False(t, s.Validate(raw))
}

func TestVerifyRejectsMalformed(t *testing.T) {
	t.Parallel()

	s := testSigner()
	require.False(t, s.Validate(""))
	require.False(t, s.Validate("not.a.token"))
}
