package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/domain"
	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/service"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/httpx"
)

// TokenResponse is returned by every flow that ends in a signed token.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Role      string     `json:"role"`
	Gender    *string    `json:"gender,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

func newTokenResponse(res domain.AuthResult) TokenResponse {
	return TokenResponse{
		AccessToken: res.Token,
		TokenType:   "Bearer",
		ExpiresAt:   res.ExpiresAt,
		User:        newUserResponse(res.User),
	}
}

func newUserResponse(info domain.UserInfo) UserResponse {
	var gender *string
	if info.Gender != nil {
		s := info.Gender.String()
		gender = &s
	}
	return UserResponse{
		ID:        info.ID,
		Email:     info.Email,
		Phone:     info.Phone,
		Role:      info.Role.String(),
		Gender:    gender,
		BirthDate: info.BirthDate,
	}
}

// writeServiceError maps a domain error kind onto its HTTP status. Unknown
// errors, internal failures included, surface as a generic server error with
// no cause detail.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Email or password is incorrect")
	case errors.Is(err, service.ErrUserExists):
		httpx.WriteError(w, http.StatusConflict, "user_exists", "An account with this identifier already exists")
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "user_not_found", "No active account matches this identifier")
	case errors.Is(err, service.ErrInvalidPhone):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_phone", "A phone number is required")
	case errors.Is(err, service.ErrUnauthorized):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication failed")
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Something went wrong")
	}
}
