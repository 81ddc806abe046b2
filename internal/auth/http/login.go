package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lumichat/lumichat/internal/auth/service"
	"github.com/lumichat/lumichat/pkg/httpx"
	"github.com/lumichat/lumichat/pkg/jwtx"
	"github.com/lumichat/lumichat/pkg/slogx"
)

type LoginHandler struct {
	Users   *service.UserService
	Signer  jwtx.Signer
	Cookies SessionCookies
}

// ServeHTTP authenticates credentials and, on success, mints a session token
// and sets the cookie. A wrong password and an unknown email are reported as
// distinct failures; no cookie is touched on any failure path.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	user, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Email and Password are required"})
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Message: "User with given email not found."})
		case errors.Is(err, service.ErrWrongPassword):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Password is incorrect."})
		default:
			log.Error("login failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
		}
		return
	}

	token, err := h.Signer.Sign(user.Email, user.ID)
	if err != nil {
		log.Error("failed to sign session token", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
		return
	}
	h.Cookies.Set(w, token)

	httpx.WriteJSON(w, http.StatusOK, LoginResponse{User: toProfile(user)})
}
