package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lumichat/lumichat/internal/auth/service"
	"github.com/lumichat/lumichat/pkg/httpx"
	"github.com/lumichat/lumichat/pkg/slogx"
)

type UpdateProfileHandler struct {
	Users *service.UserService
}

type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Color     string `json:"color"`
}

// ServeHTTP updates the session user's display fields. All three are
// required; a successful update always marks the profile as set up.
func (h *UpdateProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Message: "You are not authenticated!"})
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	user, err := h.Users.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.Color)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: "First name, last name, and color are required."})
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Message: "User with the given ID was not found."})
		default:
			log.Error("profile update failed", "user_id", userID, "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProfile(user))
}
