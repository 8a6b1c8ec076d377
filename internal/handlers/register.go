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

// Registerer defines the interface that the registration service must
// implement.
type Registerer interface {
	Register(ctx context.Context, user models.UserDB, password string) (*models.UserDB, string, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// First name
	// required: true
	// example: Ann
	FirstName string `json:"first_name"`

	// Last name
	// required: true
	// example: Lee
	LastName string `json:"last_name"`

	// Location
	// example: Palo Alto
	Location string `json:"location"`

	// Description
	// example: Likes hiking
	Description string `json:"description"`

	// Occupation
	// example: Engineer
	Occupation string `json:"occupation"`

	// Login name
	// required: true
	// example: ann
	LoginName string `json:"login_name"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account with a unique login name and binds a session for it.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 200 {object} models.UserDB "Created user"
// @Failure 400 {object} handlers.ErrorResponse "Missing field or login name already exists"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /user [post]
func NewRegisterHandler(svc Registerer, cookies SessionCookier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user := models.UserDB{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Location:    req.Location,
			Description: req.Description,
			Occupation:  req.Occupation,
			LoginName:   req.LoginName,
		}

		created, token, err := svc.Register(r.Context(), user, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingRequiredField):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeError(w, http.StatusBadRequest, "User already exists")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		cookies.SetCookie(w, token)
		writeJSON(w, http.StatusOK, created)
	}
}
