package http

import (
	"encoding/json"
	"net/http"

	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/service"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/httpx"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/slogx"
)

type OtpHandler struct {
	AuthService *service.AuthService
}

type otpRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code,omitempty"`
}

// HandleSend generates and dispatches a fresh code for the phone.
func (h *OtpHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	var req otpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	if err := h.AuthService.SendOtp(ctx, req.Phone); err != nil {
		l.Info("otp send failed", "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// HandleVerify reports whether the code currently matches. It never returns
// an error status for a bad code; the outcome is the boolean payload.
func (h *OtpHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req otpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	valid := h.AuthService.VerifyOtp(ctx, req.Phone, req.Code)
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}

// HandleLogin exchanges a code for a token.
func (h *OtpHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	var req otpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	res, err := h.AuthService.LoginWithOtp(ctx, req.Phone, req.Code)
	if err != nil {
		l.Info("otp login failed", "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newTokenResponse(res))
}
