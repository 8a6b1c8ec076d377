package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/photoshare/backend/internal/logger"
	"github.com/photoshare/backend/internal/models"
	"github.com/photoshare/backend/internal/services"
)

// uploadFieldName is the multipart form field carrying the photo bytes.
const uploadFieldName = "uploadedphoto"

// maxUploadBytes bounds the multipart form kept in memory.
const maxUploadBytes = 32 << 20

// PhotoUploader defines the interface that the ingestion service must
// implement.
type PhotoUploader interface {
	UploadPhoto(ctx context.Context, ownerID uuid.UUID, data []byte, originalName string) (*models.PhotoDB, error)
}

// NewPhotoUploadHandler returns an HTTP handler for photo upload. The
// owning user is the authenticated session's user.
// @Summary Upload a photo
// @Description Stores the uploaded bytes and records the photo for the session's user.
// @Tags photos
// @Accept mpfd
// @Produce json
// @Param uploadedphoto formData file true "Photo file"
// @Success 200 "Photo recorded"
// @Failure 400 {object} handlers.ErrorResponse "No file in request"
// @Failure 401 {object} handlers.ErrorResponse "Login required"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /photos/new [post]
func NewPhotoUploadHandler(svc PhotoUploader, auth SessionAuth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authenticate(w, r, auth)
		if !ok {
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "photo required")
			return
		}

		file, header, err := r.FormFile(uploadFieldName)
		if err != nil {
			writeError(w, http.StatusBadRequest, "photo required")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			logger.Log.Errorw("failed to read upload", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if _, err := svc.UploadPhoto(r.Context(), userID, data, header.Filename); err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyUpload):
				writeError(w, http.StatusBadRequest, "photo required")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
