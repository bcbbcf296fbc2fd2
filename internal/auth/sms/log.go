package sms

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogSender writes dispatches to the log instead of a gateway. Default when
// no gateway is configured; for non-production use only.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(ctx context.Context, phone, code string) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// The code itself stays at debug so production-level logs never carry it.
	logger.Info("sms dispatch (log sender)",
		"message_id", uuid.NewString(),
		"phone", phone,
	)
	logger.Debug("sms dispatch code", "phone", phone, "code", code)
	return nil
}
