package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/lumichat/lumichat/internal/auth/store"
	"github.com/lumichat/lumichat/pkg/slogx"
)

// ProfileImagesDir is the asset directory for profile images, relative to
// the upload root. The same relative path is what gets stored on the user
// record, so stored paths resolve against any root.
const ProfileImagesDir = "uploads/profiles"

// ProfileImageService moves staged uploads into permanent storage and keeps
// the user record's image field synchronized with the filesystem. The rename
// and the DB write are two independent operations: a rename failure aborts
// before the DB is touched, but a DB failure after a successful rename
// leaves an orphaned file behind.
type ProfileImageService struct {
	Store store.Store
	Root  string // directory containing the uploads/ tree
}

// Attach moves a staged upload into the profile-images directory and points
// the user's image field at it. The destination name is the upload timestamp
// in millis plus the original filename. Returns the stored relative path.
func (s *ProfileImageService) Attach(ctx context.Context, userID, stagedPath, originalName string) (string, error) {
	log := slogx.FromContext(ctx)

	name := fmt.Sprintf("%d%s", time.Now().UnixMilli(), filepath.Base(originalName))
	rel := path.Join(ProfileImagesDir, name)
	dest := filepath.Join(s.Root, filepath.FromSlash(rel))

	if err := os.Rename(stagedPath, dest); err != nil {
		return "", fmt.Errorf("move staged upload: %w", err)
	}

	if err := s.Store.Users().UpdateImage(ctx, userID, &rel); err != nil {
		// The file already landed; the record now disagrees with the
		// filesystem until the next successful update. Log it loudly.
		log.Error("image moved but record update failed",
			slog.String("user_id", userID),
			slog.String("image", rel),
			slog.Any("error", err),
		)
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	return rel, nil
}

// Remove deletes the user's profile image asset and clears the image field.
// With no image set it succeeds as a no-op. A failed file deletion leaves
// the image field untouched so a non-nil field always denotes a real file;
// a file that is already gone counts as deleted.
func (s *ProfileImageService) Remove(ctx context.Context, userID string) error {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if u.Image == nil {
		return nil
	}

	abs := filepath.Join(s.Root, filepath.FromSlash(*u.Image))
	if err := os.Remove(abs); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete image asset: %w", err)
	}

	if err := s.Store.Users().UpdateImage(ctx, userID, nil); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
