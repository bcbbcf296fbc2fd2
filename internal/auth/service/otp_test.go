package service

import (
	"context"
	"testing"
	"time"

	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestSendOtp(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	f.register(t, RegisterParams{Email: "sara@example.com", Password: "pw-one-two-three", Phone: "0912 345 6789"})

	t.Run("empty phone", func(t *testing.T) {
		require.ErrorIs(t, f.svc.SendOtp(ctx, "   "), ErrInvalidPhone)
	})

	t.Run("unknown phone", func(t *testing.T) {
		require.ErrorIs(t, f.svc.SendOtp(ctx, "09999999999"), ErrUserNotFound)
	})

	t.Run("dispatches a four digit code", func(t *testing.T) {
		require.NoError(t, f.svc.SendOtp(ctx, "0912-345-6789"))

		d := f.sender.last(t)
		require.Equal(t, "09123456789", d.Phone, "dispatch uses the normalized phone")
		require.Len(t, d.Code, 4)
	})

	t.Run("delivery failure keeps the code valid", func(t *testing.T) {
		require.NoError(t, f.svc.SendOtp(ctx, "09123456789"))
		code := f.sender.last(t).Code

		f.sender.mu.Lock()
		f.sender.fail = true
		f.sender.mu.Unlock()
		// A failed re-send supersedes the stored code but surfaces no error.
		require.NoError(t, f.svc.SendOtp(ctx, "09123456789"))
		f.sender.mu.Lock()
		f.sender.fail = false
		f.sender.mu.Unlock()

		// The superseding code was stored even though dispatch failed, so the
		// earlier code is dead.
		require.False(t, f.svc.VerifyOtp(ctx, "09123456789", code))
	})
}

func TestSendOtpFailsClosedWhenStoreDown(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	f.register(t, RegisterParams{Email: "sara@example.com", Password: "pw-one-two-three", Phone: "09123456789"})

	f.mr.Close()

	before := f.sender.count()
	require.ErrorIs(t, f.svc.SendOtp(ctx, "09123456789"), ErrInternal)
	require.Equal(t, before, f.sender.count(), "no dispatch may happen when the store write failed")
}

func TestVerifyOtp(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	f.register(t, RegisterParams{Email: "sara@example.com", Password: "pw-one-two-three", Phone: "09123456789"})
	require.NoError(t, f.svc.SendOtp(ctx, "09123456789"))
	code := f.sender.last(t).Code

	t.Run("empty phone", func(t *testing.T) {
		require.False(t, f.svc.VerifyOtp(ctx, "", code))
	})

	t.Run("wrong guess leaves the code usable", func(t *testing.T) {
		require.False(t, f.svc.VerifyOtp(ctx, "09123456789", "0000"))
		require.True(t, f.svc.VerifyOtp(ctx, "09123456789", code))
	})

	t.Run("single use", func(t *testing.T) {
		require.False(t, f.svc.VerifyOtp(ctx, "09123456789", code))
	})

	t.Run("store failure reads as false", func(t *testing.T) {
		require.NoError(t, f.svc.SendOtp(ctx, "09123456789"))
		fresh := f.sender.last(t).Code

		f.mr.Close()
		require.False(t, f.svc.VerifyOtp(ctx, "09123456789", fresh))
	})
}

func TestVerifyOtpExpiry(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	f.register(t, RegisterParams{Email: "sara@example.com", Password: "pw-one-two-three", Phone: "09123456789"})
	require.NoError(t, f.svc.SendOtp(ctx, "09123456789"))
	code := f.sender.last(t).Code

	f.mr.FastForward(2*time.Minute + time.Second)
	require.False(t, f.svc.VerifyOtp(ctx, "09123456789", code))
}

func TestLoginWithOtp(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	f.register(t, RegisterParams{Email: "sara@example.com", Password: "pw-one-two-three", Phone: "09123456789"})

	t.Run("end to end", func(t *testing.T) {
		require.NoError(t, f.svc.SendOtp(ctx, "0912-345-6789"))
		code := f.sender.last(t).Code

		res, err := f.svc.LoginWithOtp(ctx, "0912 345 6789", code)
		require.NoError(t, err)
		require.True(t, f.svc.ValidateToken(res.Token))
		require.Equal(t, "09123456789", res.User.Phone)

		// The code was consumed by the successful login.
		_, err = f.svc.LoginWithOtp(ctx, "09123456789", code)
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("wrong code", func(t *testing.T) {
		require.NoError(t, f.svc.SendOtp(ctx, "09123456789"))
		_, err := f.svc.LoginWithOtp(ctx, "09123456789", "0000")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("empty phone with bypass disabled", func(t *testing.T) {
		_, err := f.svc.LoginWithOtp(ctx, "", "whatever")
		require.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestLoginWithOtpBypass(t *testing.T) {
	t.Parallel()

	t.Run("no users at all", func(t *testing.T) {
		f := newFixture(t)
		f.svc.BypassEnabled = true

		_, err := f.svc.LoginWithOtp(context.Background(), "", "")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("falls back to oldest active user without admins", func(t *testing.T) {
		f := newFixture(t)
		f.svc.BypassEnabled = true
		ctx := context.Background()

		first := f.register(t, RegisterParams{Email: "p1@example.com", Password: "pw-one-two-three"})
		f.register(t, RegisterParams{Email: "p2@example.com", Password: "pw-one-two-three"})

		res, err := f.svc.LoginWithOtp(ctx, "", "")
		require.NoError(t, err)
		require.Equal(t, first.User.ID, res.User.ID)
	})

	t.Run("prefers oldest admin", func(t *testing.T) {
		f := newFixture(t)
		f.svc.BypassEnabled = true
		ctx := context.Background()

		f.register(t, RegisterParams{Email: "p1@example.com", Password: "pw-one-two-three"})
		admin1 := f.register(t, RegisterParams{Email: "a1@example.com", Password: "pw-one-two-three", Role: "admin"})
		f.register(t, RegisterParams{Email: "a2@example.com", Password: "pw-one-two-three", Role: "admin"})

		res, err := f.svc.LoginWithOtp(ctx, "", "")
		require.NoError(t, err)
		require.Equal(t, admin1.User.ID, res.User.ID)
		require.Equal(t, domain.RoleAdmin, res.User.Role)
	})
}
