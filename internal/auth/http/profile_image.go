package http

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/lumichat/lumichat/internal/auth/service"
	"github.com/lumichat/lumichat/pkg/httpx"
	"github.com/lumichat/lumichat/pkg/slogx"
)

// maxUploadBytes caps a profile image upload at 10 MiB.
const maxUploadBytes = 10 << 20

// uploadFieldName is the multipart form field carrying the image.
const uploadFieldName = "profile-image"

type AddProfileImageHandler struct {
	Images *service.ProfileImageService
	Root   string // upload root, containing uploads/tmp for staging
}

// ServeHTTP stages the multipart upload into a temp file under the upload
// root, then hands it to the image service which moves it into permanent
// storage and records the new path.
func (h *AddProfileImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Message: "You are not authenticated!"})
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: "File is required"})
		return
	}
	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: "File is required"})
		return
	}
	defer file.Close()

	staged, err := h.stage(file)
	if err != nil {
		log.Error("failed to stage upload", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
		return
	}

	rel, err := h.Images.Attach(ctx, userID, staged, header.Filename)
	if err != nil {
		// Best effort: don't leave the staged temp file behind.
		_ = os.Remove(staged)

		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Message: "User with the given ID was not found."})
			return
		}
		log.Error("failed to attach profile image", "user_id", userID, "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ImageResponse{Image: rel})
}

// stage copies the upload into uploads/tmp so the service can rename it into
// place. Renames stay on one filesystem that way.
func (h *AddProfileImageHandler) stage(src io.Reader) (string, error) {
	tmp, err := os.CreateTemp(filepath.Join(h.Root, "uploads", "tmp"), "upload-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

type RemoveProfileImageHandler struct {
	Images *service.ProfileImageService
}

// ServeHTTP deletes the session user's profile image. No image set is a
// success; a failed file deletion leaves the record untouched.
func (h *RemoveProfileImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Message: "You are not authenticated!"})
		return
	}

	if err := h.Images.Remove(ctx, userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Message: "User not found."})
			return
		}
		log.Error("failed to remove profile image", "user_id", userID, "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Error removing profile image"})
		return
	}

	httpx.WriteText(w, http.StatusOK, "Profile image removed successfully")
}
