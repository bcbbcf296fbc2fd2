package http

import (
	"errors"
	"net/http"

	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/domain"
	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/service"
	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/store"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/httpx"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// ServeHTTP returns any user's record by id. Admin only; unlike userinfo it
// also exposes inactive and soft-deleted accounts.
func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	role, _ := ctx.Value(httpx.CtxKeyRole).(string)
	if role != domain.RoleAdmin.String() {
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "Admin role required")
		return
	}

	user, err := h.UserService.GetUserByID(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "user_not_found", "No account matches this id")
			return
		}
		log.Warn("user lookup failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Something went wrong")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newUserResponse(user.Info()))
}
