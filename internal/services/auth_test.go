package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/photoshare/backend/internal/models"
	"github.com/photoshare/backend/internal/repositories"
	"github.com/photoshare/backend/internal/services"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserLoginReader(ctrl)
	mockWriter := services.NewMockUserSaver(ctrl)
	mockSessions := services.NewMockSessionBinder(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockSessions)

	validUser := models.UserDB{
		FirstName: "Ann",
		LastName:  "Lee",
		LoginName: "ann",
	}

	t.Run("successful registration", func(t *testing.T) {
		mockWriter.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u models.UserDB) (*models.UserDB, error) {
				assert.NotEqual(t, uuid.Nil, u.UserID)
				assert.NotEqual(t, "secret123", u.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")))
				return &u, nil
			})
		mockSessions.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return("token123", nil)

		created, token, err := svc.Register(context.Background(), validUser, "secret123")
		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, "ann", created.LoginName)
		assert.Equal(t, "token123", token)
	})

	t.Run("missing required fields", func(t *testing.T) {
		tests := []struct {
			name     string
			user     models.UserDB
			password string
		}{
			{name: "no first name", user: models.UserDB{LastName: "Lee", LoginName: "ann"}, password: "x"},
			{name: "no last name", user: models.UserDB{FirstName: "Ann", LoginName: "ann"}, password: "x"},
			{name: "no login name", user: models.UserDB{FirstName: "Ann", LastName: "Lee"}, password: "x"},
			{name: "no password", user: validUser, password: ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				created, token, err := svc.Register(context.Background(), tt.user, tt.password)
				assert.ErrorIs(t, err, services.ErrMissingRequiredField)
				assert.Nil(t, created)
				assert.Empty(t, token)
			})
		}
	})

	t.Run("duplicate login name", func(t *testing.T) {
		mockWriter.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			Return(nil, repositories.ErrConflict)

		created, token, err := svc.Register(context.Background(), validUser, "secret123")
		assert.ErrorIs(t, err, services.ErrUserAlreadyExists)
		assert.Nil(t, created)
		assert.Empty(t, token)
	})

	t.Run("session creation error", func(t *testing.T) {
		mockWriter.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u models.UserDB) (*models.UserDB, error) {
				return &u, nil
			})
		mockSessions.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return("", errors.New("redis down"))

		created, token, err := svc.Register(context.Background(), validUser, "secret123")
		assert.EqualError(t, err, "redis down")
		assert.Nil(t, created)
		assert.Empty(t, token)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserLoginReader(ctrl)
	mockWriter := services.NewMockUserSaver(ctrl)
	mockSessions := services.NewMockSessionBinder(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockSessions)

	password := "secret123"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	user := &models.UserDB{
		UserID:       uuid.New(),
		FirstName:    "Ann",
		LastName:     "Lee",
		LoginName:    "ann",
		PasswordHash: string(hashed),
	}

	t.Run("successful login", func(t *testing.T) {
		mockReader.EXPECT().
			GetByLogin(gomock.Any(), "ann").
			Return(user, nil)
		mockSessions.EXPECT().
			Create(gomock.Any(), user.UserID).
			Return("token123", nil)

		got, token, err := svc.Login(context.Background(), "ann", password)
		assert.NoError(t, err)
		assert.Equal(t, user, got)
		assert.Equal(t, "token123", token)
	})

	t.Run("unknown login name", func(t *testing.T) {
		mockReader.EXPECT().
			GetByLogin(gomock.Any(), "ghost").
			Return(nil, repositories.ErrNotFound)

		got, token, err := svc.Login(context.Background(), "ghost", password)
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		assert.Nil(t, got)
		assert.Empty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockReader.EXPECT().
			GetByLogin(gomock.Any(), "ann").
			Return(user, nil)

		got, token, err := svc.Login(context.Background(), "ann", "wrongpass")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		assert.Nil(t, got)
		assert.Empty(t, token)
	})

	t.Run("reader error", func(t *testing.T) {
		mockReader.EXPECT().
			GetByLogin(gomock.Any(), "ann").
			Return(nil, errors.New("db error"))

		got, token, err := svc.Login(context.Background(), "ann", password)
		assert.EqualError(t, err, "db error")
		assert.Nil(t, got)
		assert.Empty(t, token)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserLoginReader(ctrl)
	mockWriter := services.NewMockUserSaver(ctrl)
	mockSessions := services.NewMockSessionBinder(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockSessions)

	t.Run("success", func(t *testing.T) {
		mockSessions.EXPECT().
			Destroy(gomock.Any(), "token123").
			Return(nil)

		assert.NoError(t, svc.Logout(context.Background(), "token123"))
	})

	t.Run("store error", func(t *testing.T) {
		mockSessions.EXPECT().
			Destroy(gomock.Any(), "token123").
			Return(errors.New("redis down"))

		assert.EqualError(t, svc.Logout(context.Background(), "token123"), "redis down")
	})
}
