package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/service"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/httpx"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`
	Gender    string `json:"gender,omitempty"`
	BirthDate string `json:"birth_date,omitempty"` // RFC3339, any zone
}

// ServeHTTP creates a new account and returns the same response shape as
// login.
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	params := service.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
		Gender:   req.Gender,
	}
	if req.BirthDate != "" {
		t, err := time.Parse(time.RFC3339, req.BirthDate)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "birth_date must be RFC3339")
			return
		}
		params.BirthDate = &t
	}

	res, err := h.AuthService.Register(ctx, params)
	if err != nil {
		l.Info("registration failed", "email", req.Email, "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, newTokenResponse(res))
}
