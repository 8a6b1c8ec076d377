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

// UserGetter defines the interface that the user detail service must
// implement.
type UserGetter interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*models.UserDetail, error)
}

// NewUserGetHandler returns an HTTP handler for a single user's detail.
// @Summary Get a user
// @Description Returns one user without credential fields. A malformed or unknown id is a 400, matching the original client contract.
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} models.UserDetail "User detail"
// @Failure 400 {object} handlers.ErrorResponse "Invalid id or user not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /user/{id} [get]
func NewUserGetHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		user, err := svc.GetUser(r.Context(), userID)
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

		writeJSON(w, http.StatusOK, user)
	}
}
