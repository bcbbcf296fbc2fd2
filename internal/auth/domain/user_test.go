package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"0912 345 6789":  "09123456789",
		"0912-345-6789":  "09123456789",
		"  09123456789 ": "09123456789",
		"":               "",
		"   ":            "",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizePhone(in))
	}
}

func TestAuthenticatable(t *testing.T) {
	t.Parallel()

	now := time.Now()

	require.True(t, User{IsActive: true}.Authenticatable())
	require.False(t, User{IsActive: false}.Authenticatable())
	require.False(t, User{IsActive: true, DeletedAt: &now}.Authenticatable())
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	role, ok := ParseRole("Admin")
	require.True(t, ok)
	require.Equal(t, RoleAdmin, role)

	role, ok = ParseRole("superuser")
	require.False(t, ok)
	require.Equal(t, RolePatient, role)

	role, ok = ParseRole("")
	require.False(t, ok)
	require.Equal(t, RolePatient, role)
}

func TestParseGender(t *testing.T) {
	t.Parallel()

	g, ok := ParseGender("Female")
	require.True(t, ok)
	require.NotNil(t, g)
	require.Equal(t, GenderFemale, *g)

	g, ok = ParseGender("")
	require.True(t, ok)
	require.Nil(t, g)

	g, ok = ParseGender("unknown-value")
	require.False(t, ok)
	require.Nil(t, g)
}
