package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/lumichat/lumichat/internal/auth/domain"
	"github.com/lumichat/lumichat/internal/auth/store"
	"github.com/lumichat/lumichat/pkg/cryptox"
	"github.com/lumichat/lumichat/pkg/idx"
	"github.com/lumichat/lumichat/pkg/slogx"
)

var (
	ErrValidation    = errors.New("required field missing or empty")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("incorrect password")
)

// UserService owns credential storage and verification. Passwords are hashed
// here, unconditionally, before anything reaches the store, so no entry point
// can persist a plaintext.
type UserService struct {
	Store store.Store
}

// Create registers a new user. The plaintext password is irreversibly hashed
// before the record is written; a duplicate email yields ErrEmailTaken.
func (s *UserService) Create(ctx context.Context, email, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.User{}, ErrValidation
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, err
	}

	return s.GetByID(ctx, u.ID)
}

// Authenticate looks up the account and checks the candidate password against
// the stored hash. A missing account and a wrong password are distinct
// failures; the HTTP layer keeps them distinct too.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return domain.User{}, ErrValidation
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, ErrWrongPassword
		}
		return domain.User{}, err
	}

	return u, nil
}

// GetByID fetches a user by id.
func (s *UserService) GetByID(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

// UpdateProfile sets the display fields and marks the profile as set up.
// All three fields are required; profile_setup flips on unconditionally.
func (s *UserService) UpdateProfile(ctx context.Context, userID, firstName, lastName, color string) (domain.User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	color = strings.TrimSpace(color)
	if firstName == "" || lastName == "" || color == "" {
		return domain.User{}, ErrValidation
	}

	if err := s.Store.Users().UpdateProfile(ctx, userID, firstName, lastName, color); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	return s.GetByID(ctx, userID)
}
