package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewHS256_RejectsEmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewHS256("")
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	h, err := NewHS256("test-secret")
	require.NoError(t, err)

	token, err := h.Sign("a@x.com", "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", claims.UserID)

	// Expiry sits the full session window past issuance.
	require.WithinDuration(t,
		claims.IssuedAt.Add(SessionTTL),
		claims.ExpiresAt.Time,
		time.Second,
	)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	signer, err := NewHS256("secret-one")
	require.NoError(t, err)
	verifier, err := NewHS256("secret-two")
	require.NoError(t, err)

	token, err := signer.Sign("a@x.com", "user-1")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	h, err := NewHS256("test-secret")
	require.NoError(t, err)

	issued := time.Now()
	h.now = func() time.Time { return issued }

	token, err := h.Sign("a@x.com", "user-1")
	require.NoError(t, err)

	// Still valid just inside the window.
	h.now = func() time.Time { return issued.Add(SessionTTL - time.Minute) }
	_, err = h.Verify(token)
	require.NoError(t, err)

	// Invalid once the window elapses.
	h.now = func() time.Time { return issued.Add(SessionTTL + time.Minute) }
	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	t.Parallel()

	h, err := NewHS256("test-secret")
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := h.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerify_MissingUserID(t *testing.T) {
	t.Parallel()

	h, err := NewHS256("test-secret")
	require.NoError(t, err)

	token, err := h.Sign("a@x.com", "")
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
