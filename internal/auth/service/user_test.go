package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumichat/lumichat/pkg/cryptox"
	"github.com/lumichat/lumichat/pkg/idx"
)

func TestUserService_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	u, err := svc.Create(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", u.Email)
	require.False(t, u.ProfileSetup)
	require.False(t, u.CreatedAt.IsZero())

	_, err = idx.Parse(u.ID)
	require.NoError(t, err, "store-assigned id should be a valid ulid")

	// The record never contains the plaintext, only a verifiable hash.
	require.NotEqual(t, "pw1", u.PasswordHash)
	require.NotContains(t, u.PasswordHash, "pw1")
	require.NoError(t, cryptox.VerifyPassword("pw1", u.PasswordHash))
}

func TestUserService_Create_Validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"missing email", "", "pw1"},
		{"missing password", "a@x.com", ""},
		{"both missing", "", ""},
		{"blank email", "   ", "pw1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.email, tt.password)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	first, err := svc.Create(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "a@x.com", "pw2")
	require.ErrorIs(t, err, ErrEmailTaken)

	// Exactly one record exists for the email afterward, the original one.
	u, err := svc.Store.Users().GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, first.ID, u.ID)
	require.NoError(t, cryptox.VerifyPassword("pw1", u.PasswordHash))
}

func TestUserService_Authenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	created, err := svc.Create(ctx, "a@x.com", "right")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		u, err := svc.Authenticate(ctx, "a@x.com", "right")
		require.NoError(t, err)
		require.Equal(t, created.ID, u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "a@x.com", "wrong")
		require.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@x.com", "right")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "", "right")
		require.ErrorIs(t, err, ErrValidation)
		_, err = svc.Authenticate(ctx, "a@x.com", "")
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	created, err := svc.Create(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.False(t, created.ProfileSetup)

	u, err := svc.UpdateProfile(ctx, created.ID, "Ada", "Lovelace", "#7c3aed")
	require.NoError(t, err)
	require.Equal(t, "Ada", u.FirstName)
	require.Equal(t, "Lovelace", u.LastName)
	require.Equal(t, "#7c3aed", u.Color)
	require.True(t, u.ProfileSetup, "profile_setup flips on with the update")

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, created.ID, "Ada", "", "#7c3aed")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, idx.New().String(), "Ada", "Lovelace", "#7c3aed")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	_, err := svc.GetByID(ctx, idx.New().String())
	require.ErrorIs(t, err, ErrUserNotFound)
}
