package store

import (
	"context"
	"errors"

	"github.com/lumichat/lumichat/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Every operation touches a single record; there are no
// multi-record transactions in this service.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by the service via ULID).
	// A duplicate email maps to ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdateProfile sets the name and color fields, flips profile_setup on,
	// and bumps updated_at.
	UpdateProfile(ctx context.Context, userID, firstName, lastName, color string) error

	// UpdateImage sets or clears the image path and bumps updated_at.
	UpdateImage(ctx context.Context, userID string, image *string) error
}
