package http

import (
	"net/http"

	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/service"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/httpx"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/slogx"
)

type UserInfoHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP returns the authenticated user's record. The subject comes from
// the verified bearer token, never from the request.
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "Missing or invalid access token")
		return
	}

	info, err := h.AuthService.GetUserInfo(ctx, userID)
	if err != nil {
		log.Warn("failed to load user", "user_id", userID, "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newUserResponse(info))
}
