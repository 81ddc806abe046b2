package http

import (
	"errors"
	"net/http"

	"github.com/lumichat/lumichat/internal/auth/service"
	"github.com/lumichat/lumichat/pkg/httpx"
	"github.com/lumichat/lumichat/pkg/slogx"
)

type UserInfoHandler struct {
	Users *service.UserService
}

// ServeHTTP returns the sanitized profile of the session's user. The session
// middleware has already resolved the identity; a record that no longer
// exists behind a still-valid token is a 404.
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Message: "You are not authenticated!"})
		return
	}

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Message: "User with the given ID was not found."})
			return
		}
		log.Error("failed to load user", "user_id", userID, "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProfile(user))
}
