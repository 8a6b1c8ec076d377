package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/photoshare/backend/internal/logger"
	"github.com/photoshare/backend/internal/services"
)

// Commenter defines the interface that the commenting service must
// implement.
type Commenter interface {
	AddComment(ctx context.Context, photoID, userID uuid.UUID, text string) error
}

// CommentRequest represents the JSON body for posting a comment
// swagger:model CommentRequest
type CommentRequest struct {
	// Comment text
	// required: true
	// example: Nice shot!
	Comment string `json:"comment"`
}

// NewCommentHandler returns an HTTP handler for posting a comment on a
// photo. The comment's author is the authenticated session's user.
// @Summary Comment on a photo
// @Description Appends one comment to the photo's comment sequence.
// @Tags photos
// @Accept json
// @Produce json
// @Param photo_id path string true "Photo id"
// @Param commentRequest body handlers.CommentRequest true "Comment request"
// @Success 200 "Comment appended"
// @Failure 400 {object} handlers.ErrorResponse "Missing comment or photo not found"
// @Failure 401 {object} handlers.ErrorResponse "Login required"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /commentsOfPhoto/{photo_id} [post]
func NewCommentHandler(svc Commenter, auth SessionAuth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authenticate(w, r, auth)
		if !ok {
			return
		}

		photoID, err := uuid.Parse(chi.URLParam(r, "photo_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid photo id")
			return
		}

		var req CommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := svc.AddComment(r.Context(), photoID, userID, req.Comment); err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyComment):
				writeError(w, http.StatusBadRequest, "comment required")
			case errors.Is(err, services.ErrPhotoNotFound):
				writeError(w, http.StatusBadRequest, "photo not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
