package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/photoshare/backend/internal/logger"
	"github.com/photoshare/backend/internal/models"
	"github.com/photoshare/backend/internal/repositories"
)

// ErrUserNotFound is returned when a referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// UserReader defines the read operations the user service needs.
type UserReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	List(ctx context.Context) ([]models.UserPublic, error)
}

// UserService serves user detail and listing views.
type UserService struct {
	reader UserReader
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader) *UserService {
	return &UserService{reader: reader}
}

// GetUser returns the credential-free view of one user.
func (svc *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*models.UserDetail, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}

	detail := user.Detail()
	return &detail, nil
}

// ListUsers returns the public projection of every user.
func (svc *UserService) ListUsers(ctx context.Context) ([]models.UserPublic, error) {
	users, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}
	return users, nil
}
