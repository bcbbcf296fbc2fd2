package service

import (
	"errors"
	"fmt"
)

// Domain error kinds. The HTTP boundary maps each to a status code, so flows
// must return these rather than a generic failure.
var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUserExists         = errors.New("user_exists")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrInvalidPhone       = errors.New("invalid_phone")
	ErrUnauthorized       = errors.New("unauthorized")

	// ErrInternal wraps store and network faults. The cause is preserved for
	// diagnostics but callers only ever see the generic kind.
	ErrInternal = errors.New("internal_failure")
)

func internalErr(cause error) error {
	return fmt.Errorf("%w: %w", ErrInternal, cause)
}
