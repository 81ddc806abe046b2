package http

import (
	"github.com/lumichat/lumichat/internal/auth/domain"
)

// ErrorResponse is the JSON body for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// UserProfile is the sanitized projection of a user record, the only shape a
// client ever sees. The password hash stays server-side.
type UserProfile struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	ProfileSetup bool    `json:"profileSetup"`
	FirstName    string  `json:"firstName,omitempty"`
	LastName     string  `json:"lastName,omitempty"`
	Image        *string `json:"image"`
	Color        string  `json:"color,omitempty"`
}

// SignupResponse carries the reduced projection returned on signup, before
// any profile fields exist.
type SignupResponse struct {
	User SignupUser `json:"user"`
}

type SignupUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	ProfileSetup bool   `json:"profileSetup"`
}

// LoginResponse wraps the full projection the way the login endpoint
// returns it.
type LoginResponse struct {
	User UserProfile `json:"user"`
}

// ImageResponse is the add-profile-image success body.
type ImageResponse struct {
	Image string `json:"image"`
}

func toProfile(u domain.User) UserProfile {
	return UserProfile{
		ID:           u.ID,
		Email:        u.Email,
		ProfileSetup: u.ProfileSetup,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Image:        u.Image,
		Color:        u.Color,
	}
}
