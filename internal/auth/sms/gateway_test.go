package sms

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGatewaySenderPostsDispatch(t *testing.T) {
	t.Parallel()

	var got gatewayRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "secret-key", r.Header.Get("X-API-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := &GatewaySender{URL: srv.URL, APIKey: "secret-key"}
	require.NoError(t, s.Send(context.Background(), "09123456789", "4471"))

	require.Equal(t, "09123456789", got.To)
	require.Contains(t, got.Body, "4471")
	require.NotEmpty(t, got.MessageID)
}

func TestGatewaySenderNon2xx(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := &GatewaySender{URL: srv.URL}
	err := s.Send(context.Background(), "09123456789", "4471")
	require.ErrorIs(t, err, ErrDeliveryFailed)
}

func TestGatewaySenderHonorsContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The body must be drained before the server can notice the client
		// hanging up; the timer bounds the handler either way.
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := &GatewaySender{URL: srv.URL}
	err := s.Send(ctx, "09123456789", "4471")
	require.ErrorIs(t, err, ErrDeliveryFailed)
}
