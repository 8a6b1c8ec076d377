package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/photoshare/backend/internal/logger"
	"github.com/photoshare/backend/internal/models"
	"github.com/photoshare/backend/internal/services"
)

// PhotoViewer defines the interface that the photo aggregation service
// must implement.
type PhotoViewer interface {
	GetPhotosOfUser(ctx context.Context, userID uuid.UUID) ([]models.PhotoView, error)
}

// NewPhotosOfUserHandler returns an HTTP handler for a user's photo feed.
// @Summary Photos of a user
// @Description Returns the user's photos with comments, each comment enriched with the author's public projection. A user with no photos yields an empty array.
// @Tags photos
// @Produce json
// @Param id path string true "User id"
// @Success 200 {array} models.PhotoView "Photo views"
// @Failure 400 {object} handlers.ErrorResponse "Invalid id or user not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /photosOfUser/{id} [get]
func NewPhotosOfUserHandler(svc PhotoViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		photos, err := svc.GetPhotosOfUser(r.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusBadRequest, "user not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		if photos == nil {
			photos = []models.PhotoView{}
		}
		writeJSON(w, http.StatusOK, photos)
	}
}
