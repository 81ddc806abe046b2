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

type SignupHandler struct {
	Users   *service.UserService
	Signer  jwtx.Signer
	Cookies SessionCookies
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP registers a new account, mints a session token for it, and sets
// the session cookie so the client is logged in straight away.
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	user, err := h.Users.Create(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Email and Password are required"})
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{Message: "Email is already registered"})
		default:
			log.Error("signup failed", "err", err)
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

	httpx.WriteJSON(w, http.StatusCreated, SignupResponse{
		User: SignupUser{
			ID:           user.ID,
			Email:        user.Email,
			ProfileSetup: user.ProfileSetup,
		},
	})
}
