package handlers

import (
	"context"
	"net/http"

	"github.com/photoshare/backend/internal/logger"
	"github.com/photoshare/backend/internal/models"
)

// UserLister defines the interface that the user listing service must
// implement.
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.UserPublic, error)
}

// NewUserListHandler returns an HTTP handler for the user listing.
// @Summary List users
// @Description Returns every user projected to id and name fields only. An empty table is a 400, matching the original client contract.
// @Tags users
// @Produce json
// @Success 200 {array} models.UserPublic "User listing"
// @Failure 400 {object} handlers.ErrorResponse "No users"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /user/list [get]
func NewUserListHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if len(users) == 0 {
			writeError(w, http.StatusBadRequest, "no users")
			return
		}

		writeJSON(w, http.StatusOK, users)
	}
}
