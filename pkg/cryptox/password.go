package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the library default. Raising it invalidates nothing,
// existing hashes keep verifying with their embedded cost.
const bcryptCost = bcrypt.DefaultCost

// ErrPasswordMismatch reports that a candidate password does not match the
// stored hash. Any other error from VerifyPassword means the hash itself is
// broken, which should never happen for hashes we wrote.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// HashPassword produces a salted bcrypt hash of the plaintext. The salt is
// generated per call, so hashing the same password twice yields different
// strings.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a candidate plaintext against a stored bcrypt hash
// using bcrypt's own constant-time comparison. Never compare hashes with ==.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return fmt.Errorf("cryptox: verify password: %w", err)
}
