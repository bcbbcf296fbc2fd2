// Package sms delivers one-time codes to phone numbers. The delivery channel
// is pluggable; a failed dispatch never invalidates the stored code.
package sms

import (
	"context"
	"errors"
)

var ErrDeliveryFailed = errors.New("sms: delivery failed")

// Sender dispatches a one-time code to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, code string) error
}
