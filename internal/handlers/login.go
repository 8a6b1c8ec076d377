package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/photoshare/backend/internal/logger"
	"github.com/photoshare/backend/internal/models"
	"github.com/photoshare/backend/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, loginName, password string) (*models.UserDB, string, error)
}

// LoginRequest represents the JSON body for login
// swagger:model LoginRequest
type LoginRequest struct {
	// Login name
	// required: true
	// example: ann
	LoginName string `json:"login_name"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// NewLoginHandler returns an HTTP handler for login.
// @Summary Log in
// @Description Authenticates by login name and password and binds a session. A failed match returns 400, matching the original client contract.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login request"
// @Success 200 {object} models.UserDB "Authenticated user"
// @Failure 400 {object} handlers.ErrorResponse "No matching user"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /admin/login [post]
func NewLoginHandler(svc Loginer, cookies SessionCookier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, token, err := svc.Login(r.Context(), req.LoginName, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				writeError(w, http.StatusBadRequest, "Invalid login name or password")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		cookies.SetCookie(w, token)
		writeJSON(w, http.StatusOK, user)
	}
}
