package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// newAssetFixture wires a ProfileImageService against a fresh store and a
// temp upload root with the asset directories in place, plus one user.
func newAssetFixture(t *testing.T) (*ProfileImageService, *UserService, string, string) {
	t.Helper()

	st := newTestStore(t)
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "uploads", "profiles"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "uploads", "tmp"), 0o750))

	users := &UserService{Store: st}
	u, err := users.Create(context.Background(), "a@x.com", "pw1")
	require.NoError(t, err)

	return &ProfileImageService{Store: st, Root: root}, users, root, u.ID
}

// stageFile drops a fake upload into the staging dir, the way the
// add-profile-image handler does before calling Attach.
func stageFile(t *testing.T, root, content string) string {
	t.Helper()

	f, err := os.CreateTemp(filepath.Join(root, "uploads", "tmp"), "upload-*")
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func TestProfileImageService_Attach(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, users, root, userID := newAssetFixture(t)

	staged := stageFile(t, root, "png-bytes")

	rel, err := svc.Attach(ctx, userID, staged, "avatar.png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(rel, "uploads/profiles/"))
	require.True(t, strings.HasSuffix(rel, "avatar.png"))

	// Staged file moved, not copied.
	require.NoFileExists(t, staged)
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(data))

	u, err := users.GetByID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, u.Image)
	require.Equal(t, rel, *u.Image)
}

func TestProfileImageService_Attach_MoveFails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, users, root, userID := newAssetFixture(t)

	// Staged path that does not exist: the rename fails and the record is
	// left untouched.
	_, err := svc.Attach(ctx, userID, filepath.Join(root, "uploads", "tmp", "missing"), "avatar.png")
	require.Error(t, err)

	u, err := users.GetByID(ctx, userID)
	require.NoError(t, err)
	require.Nil(t, u.Image)
}

func TestProfileImageService_Remove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, users, root, userID := newAssetFixture(t)

	staged := stageFile(t, root, "png-bytes")
	rel, err := svc.Attach(ctx, userID, staged, "avatar.png")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, userID))
	require.NoFileExists(t, filepath.Join(root, filepath.FromSlash(rel)))

	u, err := users.GetByID(ctx, userID)
	require.NoError(t, err)
	require.Nil(t, u.Image)

	// Removing again is a no-op, not an error.
	require.NoError(t, svc.Remove(ctx, userID))
}

func TestProfileImageService_Remove_NoImage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _, userID := newAssetFixture(t)

	require.NoError(t, svc.Remove(ctx, userID))
}

func TestProfileImageService_Remove_DeleteFails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, users, root, userID := newAssetFixture(t)

	// Point the image at a non-empty directory: os.Remove fails on it, which
	// stands in for any filesystem delete failure.
	rel := "uploads/profiles/stuck"
	require.NoError(t, os.MkdirAll(filepath.Join(root, "uploads", "profiles", "stuck"), 0o750))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "uploads", "profiles", "stuck", "inner"), []byte("x"), 0o600))
	require.NoError(t, svc.Store.Users().UpdateImage(ctx, userID, &rel))

	require.Error(t, svc.Remove(ctx, userID))

	// The image field is never nulled on a failed delete.
	u, err := users.GetByID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, u.Image)
	require.Equal(t, rel, *u.Image)
}

func TestProfileImageService_Remove_FileAlreadyGone(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, users, _, userID := newAssetFixture(t)

	// A dangling record (file deleted out-of-band) still clears cleanly.
	rel := "uploads/profiles/ghost.png"
	require.NoError(t, svc.Store.Users().UpdateImage(ctx, userID, &rel))

	require.NoError(t, svc.Remove(ctx, userID))

	u, err := users.GetByID(ctx, userID)
	require.NoError(t, err)
	require.Nil(t, u.Image)
}
