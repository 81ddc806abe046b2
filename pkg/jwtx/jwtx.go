// Package jwtx issues and verifies the stateless session tokens carried in
// the session cookie. Tokens are HS256-signed with a single process-wide
// secret injected at construction, never read from the environment here.
package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the fixed validity window for session tokens. There is no
// revocation store, so a minted token stays valid for the full window even
// after a client-visible logout.
const SessionTTL = 3 * 24 * time.Hour

var (
	// ErrInvalidToken covers both a bad signature and an expired token.
	// Callers are not meant to distinguish the two.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	// ErrEmptySecret reports a missing signing secret at construction.
	ErrEmptySecret = errors.New("jwtx: signing secret must not be empty")
)

// Claims are the session-token claims: the registered set plus the
// authenticated identity.
type Claims struct {
	jwt.RegisteredClaims

	Email  string `json:"email"`
	UserID string `json:"userId"`
}

// Signer mints session tokens for authenticated identities.
type Signer interface {
	Sign(email, userID string) (string, error)
}

// Verifier validates a session token and returns its claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256 signs and verifies session tokens with a shared secret. It is
// stateless and safe for concurrent use.
type HS256 struct {
	secret []byte
	ttl    time.Duration

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewHS256 builds a signer/verifier around the given secret with the
// standard SessionTTL.
func NewHS256(secret string) (*HS256, error) {
	return NewHS256WithTTL(secret, SessionTTL)
}

// NewHS256WithTTL is NewHS256 with a caller-chosen validity window.
func NewHS256WithTTL(secret string, ttl time.Duration) (*HS256, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &HS256{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Sign mints a token for the identity, valid for the configured window
// from the moment of signing.
func (h *HS256) Sign(email, userID string) (string, error) {
	now := h.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.ttl)),
		},
		Email:  email,
		UserID: userID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return token, nil
}

// Verify parses and validates a token string. Signature failures and expiry
// both come back as ErrInvalidToken.
func (h *HS256) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return h.now() }),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.UserID == "" {
		return Claims{}, fmt.Errorf("%w: missing userId claim", ErrInvalidToken)
	}
	return *claims, nil
}
