package domain

import "time"

// User is the persisted account record. PasswordHash is only ever written by
// the service layer's hashing routine; the plaintext never reaches the store.
type User struct {
	ID           string
	Email        string // globally unique, enforced by the store
	PasswordHash string // bcrypt encoded
	FirstName    string
	LastName     string
	Image        *string // relative asset path; non-nil means the file exists
	Color        string  // UI accent identifier, opaque to this service
	ProfileSetup bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
