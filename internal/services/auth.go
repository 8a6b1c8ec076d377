package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/photoshare/backend/internal/logger"
	"github.com/photoshare/backend/internal/models"
	"github.com/photoshare/backend/internal/repositories"
)

// Error variables
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid login name or password")
)

// UserLoginReader looks a user up by login name.
type UserLoginReader interface {
	GetByLogin(ctx context.Context, loginName string) (*models.UserDB, error)
}

// UserSaver persists a new user atomically.
type UserSaver interface {
	Save(ctx context.Context, user models.UserDB) (*models.UserDB, error)
}

// SessionBinder creates and destroys session bindings.
type SessionBinder interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Destroy(ctx context.Context, token string) error
}

// AuthService handles registration, login, and logout.
type AuthService struct {
	reader   UserLoginReader
	writer   UserSaver
	sessions SessionBinder
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserLoginReader, writer UserSaver, sessions SessionBinder) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		sessions: sessions,
	}
}

// Register creates a new user and binds a session for it. The uniqueness
// of login_name is enforced by the store's insert, not by a prior
// existence check, so concurrent registrations cannot both win.
func (svc *AuthService) Register(ctx context.Context, user models.UserDB, password string) (*models.UserDB, string, error) {
	for field, value := range map[string]string{
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"login_name": user.LoginName,
		"password":   password,
	} {
		if value == "" {
			return nil, "", fmt.Errorf("%w: %s", ErrMissingRequiredField, field)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, "", err
	}

	user.UserID = uuid.New()
	user.PasswordHash = string(hashed)

	saved, err := svc.writer.Save(ctx, user)
	if err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			logger.Log.Errorw("user already exists", "login_name", user.LoginName)
			return nil, "", ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, "", err
	}

	token, err := svc.sessions.Create(ctx, saved.UserID)
	if err != nil {
		logger.Log.Errorw("failed to create session", "err", err)
		return nil, "", err
	}

	return saved, token, nil
}

// Login authenticates a user and binds a session for it.
func (svc *AuthService) Login(ctx context.Context, loginName, password string) (*models.UserDB, string, error) {
	user, err := svc.reader.GetByLogin(ctx, loginName)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logger.Log.Errorw("login name does not exist", "login_name", loginName)
			return nil, "", ErrInvalidCredentials
		}
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "login_name", loginName)
		return nil, "", ErrInvalidCredentials
	}

	token, err := svc.sessions.Create(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to create session", "err", err)
		return nil, "", err
	}

	return user, token, nil
}

// Logout destroys the session binding. Logging out a session that no
// longer exists succeeds.
func (svc *AuthService) Logout(ctx context.Context, token string) error {
	if err := svc.sessions.Destroy(ctx, token); err != nil {
		logger.Log.Errorw("failed to destroy session", "err", err)
		return err
	}
	return nil
}
