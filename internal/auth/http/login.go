package http

import (
	"encoding/json"
	"net/http"

	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/service"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/httpx"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP handles the password grant.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	res, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		l.Info("login failed", "email", req.Email, "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newTokenResponse(res))
}
