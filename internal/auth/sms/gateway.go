package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

// GatewaySender posts dispatch requests to an HTTP SMS gateway. Requests
// carry the caller's context, so deadlines and cancellation propagate to the
// gateway call.
type GatewaySender struct {
	URL    string
	APIKey string
	Client *http.Client
}

type gatewayRequest struct {
	MessageID string `json:"message_id"`
	To        string `json:"to"`
	Body      string `json:"body"`
}

func (s *GatewaySender) Send(ctx context.Context, phone, code string) error {
	payload, err := json.Marshal(gatewayRequest{
		MessageID: uuid.NewString(),
		To:        phone,
		Body:      fmt.Sprintf("Your login code is %s. It expires in 2 minutes.", code),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", s.APIKey)

	resp, err := s.client().Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: gateway returned %s", ErrDeliveryFailed, resp.Status)
	}
	return nil
}

func (s *GatewaySender) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return &http.Client{Timeout: defaultTimeout}
}
