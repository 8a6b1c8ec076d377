package services_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/photoshare/backend/internal/models"
	"github.com/photoshare/backend/internal/repositories"
	"github.com/photoshare/backend/internal/services"
)

func newPhotoService(ctrl *gomock.Controller) (
	*services.PhotoService,
	*services.MockPhotoReader,
	*services.MockPhotoWriter,
	*services.MockAuthorResolver,
	*services.MockBlobPutter,
) {
	mockReader := services.NewMockPhotoReader(ctrl)
	mockWriter := services.NewMockPhotoWriter(ctrl)
	mockUsers := services.NewMockAuthorResolver(ctrl)
	mockBlobs := services.NewMockBlobPutter(ctrl)

	svc := services.NewPhotoService(mockReader, mockWriter, mockUsers, mockBlobs, nil)
	return svc, mockReader, mockWriter, mockUsers, mockBlobs
}

func TestPhotoService_GetPhotosOfUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	owner := &models.UserDB{UserID: ownerID, FirstName: "Ann", LastName: "Lee"}

	t.Run("unknown user", func(t *testing.T) {
		svc, _, _, mockUsers, _ := newPhotoService(ctrl)

		mockUsers.EXPECT().
			GetByID(gomock.Any(), ownerID).
			Return(nil, repositories.ErrNotFound)

		views, err := svc.GetPhotosOfUser(context.Background(), ownerID)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		assert.Nil(t, views)
	})

	t.Run("user with no photos", func(t *testing.T) {
		svc, mockReader, _, mockUsers, _ := newPhotoService(ctrl)

		mockUsers.EXPECT().GetByID(gomock.Any(), ownerID).Return(owner, nil)
		mockReader.EXPECT().ListByUserID(gomock.Any(), ownerID).Return(nil, nil)
		mockReader.EXPECT().ListCommentsByPhotoIDs(gomock.Any(), gomock.Any()).Return(nil, nil)
		mockUsers.EXPECT().GetPublicByIDs(gomock.Any(), gomock.Any()).Return(nil, nil)

		views, err := svc.GetPhotosOfUser(context.Background(), ownerID)
		assert.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("photos carry comments with resolved authors", func(t *testing.T) {
		svc, mockReader, _, mockUsers, _ := newPhotoService(ctrl)

		commenterID := uuid.New()
		goneID := uuid.New()
		photo1 := models.PhotoDB{PhotoID: uuid.New(), FileName: "a.jpg", DateTime: time.Now(), UserID: ownerID}
		photo2 := models.PhotoDB{PhotoID: uuid.New(), FileName: "b.jpg", DateTime: time.Now(), UserID: ownerID}

		comments := []models.CommentDB{
			{CommentID: uuid.New(), PhotoID: photo1.PhotoID, UserID: commenterID, Comment: "first", Seq: 1},
			{CommentID: uuid.New(), PhotoID: photo1.PhotoID, UserID: goneID, Comment: "second", Seq: 2},
			{CommentID: uuid.New(), PhotoID: photo1.PhotoID, UserID: commenterID, Comment: "third", Seq: 3},
		}

		mockUsers.EXPECT().GetByID(gomock.Any(), ownerID).Return(owner, nil)
		mockReader.EXPECT().
			ListByUserID(gomock.Any(), ownerID).
			Return([]models.PhotoDB{photo1, photo2}, nil)
		mockReader.EXPECT().
			ListCommentsByPhotoIDs(gomock.Any(), []uuid.UUID{photo1.PhotoID, photo2.PhotoID}).
			Return(comments, nil)
		// Two comments share an author: the lookup sees each id once.
		mockUsers.EXPECT().
			GetPublicByIDs(gomock.Any(), []uuid.UUID{commenterID, goneID}).
			Return([]models.UserPublic{{UserID: commenterID, FirstName: "Lee", LastName: "Chan"}}, nil)

		views, err := svc.GetPhotosOfUser(context.Background(), ownerID)
		assert.NoError(t, err)
		assert.Len(t, views, 2)

		assert.Equal(t, photo1.PhotoID, views[0].PhotoID)
		assert.Len(t, views[0].Comments, 3)
		assert.Equal(t, "first", views[0].Comments[0].Comment)
		assert.Equal(t, "second", views[0].Comments[1].Comment)
		assert.Equal(t, "third", views[0].Comments[2].Comment)

		// Resolved author carries the public projection.
		assert.NotNil(t, views[0].Comments[0].User)
		assert.Equal(t, "Lee", views[0].Comments[0].User.FirstName)
		// An author that no longer exists stays nil, not an error.
		assert.Nil(t, views[0].Comments[1].User)

		// A photo with no comments shows an empty slice, not null.
		assert.NotNil(t, views[1].Comments)
		assert.Empty(t, views[1].Comments)
	})

	t.Run("comment listing error", func(t *testing.T) {
		svc, mockReader, _, mockUsers, _ := newPhotoService(ctrl)

		mockUsers.EXPECT().GetByID(gomock.Any(), ownerID).Return(owner, nil)
		mockReader.EXPECT().
			ListByUserID(gomock.Any(), ownerID).
			Return([]models.PhotoDB{{PhotoID: uuid.New(), UserID: ownerID}}, nil)
		mockReader.EXPECT().
			ListCommentsByPhotoIDs(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("db error"))

		views, err := svc.GetPhotosOfUser(context.Background(), ownerID)
		assert.EqualError(t, err, "db error")
		assert.Nil(t, views)
	})
}

func TestPhotoService_UploadPhoto(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	data := []byte("jpeg bytes")

	t.Run("empty upload", func(t *testing.T) {
		svc, _, _, _, _ := newPhotoService(ctrl)

		photo, err := svc.UploadPhoto(context.Background(), ownerID, nil, "cat.jpg")
		assert.ErrorIs(t, err, services.ErrEmptyUpload)
		assert.Nil(t, photo)
	})

	t.Run("successful upload", func(t *testing.T) {
		svc, _, mockWriter, _, mockBlobs := newPhotoService(ctrl)

		var storedKey string
		mockBlobs.EXPECT().
			Put(gomock.Any(), gomock.Any(), gomock.Any(), int64(len(data)), "application/octet-stream").
			DoAndReturn(func(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
				storedKey = key
				got, _ := io.ReadAll(r)
				assert.Equal(t, data, got)
				return nil
			})
		mockWriter.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p models.PhotoDB) error {
				assert.Equal(t, storedKey, p.FileName)
				assert.Equal(t, ownerID, p.UserID)
				return nil
			})

		photo, err := svc.UploadPhoto(context.Background(), ownerID, data, "cat.jpg")
		assert.NoError(t, err)
		assert.NotNil(t, photo)
		// The storage name is the timestamp-prefixed original name.
		assert.True(t, strings.HasPrefix(photo.FileName, "U"))
		assert.True(t, strings.HasSuffix(photo.FileName, "cat.jpg"))
		assert.NotEqual(t, uuid.Nil, photo.PhotoID)
	})

	t.Run("blob write error", func(t *testing.T) {
		svc, _, _, _, mockBlobs := newPhotoService(ctrl)

		mockBlobs.EXPECT().
			Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("storage down"))

		photo, err := svc.UploadPhoto(context.Background(), ownerID, data, "cat.jpg")
		assert.EqualError(t, err, "storage down")
		assert.Nil(t, photo)
	})

	t.Run("owner vanished between auth and save", func(t *testing.T) {
		svc, _, mockWriter, _, mockBlobs := newPhotoService(ctrl)

		mockBlobs.EXPECT().
			Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		mockWriter.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			Return(repositories.ErrNotFound)

		photo, err := svc.UploadPhoto(context.Background(), ownerID, data, "cat.jpg")
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		assert.Nil(t, photo)
	})
}

func TestPhotoService_AddComment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	photoID := uuid.New()
	userID := uuid.New()

	t.Run("empty comment", func(t *testing.T) {
		svc, _, _, _, _ := newPhotoService(ctrl)

		err := svc.AddComment(context.Background(), photoID, userID, "")
		assert.ErrorIs(t, err, services.ErrEmptyComment)
	})

	t.Run("successful comment", func(t *testing.T) {
		svc, _, mockWriter, _, _ := newPhotoService(ctrl)

		mockWriter.EXPECT().
			AppendComment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c models.CommentDB) error {
				assert.Equal(t, photoID, c.PhotoID)
				assert.Equal(t, userID, c.UserID)
				assert.Equal(t, "Nice shot!", c.Comment)
				assert.NotEqual(t, uuid.Nil, c.CommentID)
				return nil
			})

		err := svc.AddComment(context.Background(), photoID, userID, "Nice shot!")
		assert.NoError(t, err)
	})

	t.Run("unknown photo", func(t *testing.T) {
		svc, _, mockWriter, _, _ := newPhotoService(ctrl)

		mockWriter.EXPECT().
			AppendComment(gomock.Any(), gomock.Any()).
			Return(repositories.ErrNotFound)

		err := svc.AddComment(context.Background(), photoID, userID, "Nice shot!")
		assert.ErrorIs(t, err, services.ErrPhotoNotFound)
	})
}

func TestPhotoService_ActivityEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockPhotoReader(ctrl)
	mockWriter := services.NewMockPhotoWriter(ctrl)
	mockUsers := services.NewMockAuthorResolver(ctrl)
	mockBlobs := services.NewMockBlobPutter(ctrl)
	mockKafka := services.NewMockKafkaWriter(ctrl)

	svc := services.NewPhotoService(mockReader, mockWriter, mockUsers, mockBlobs, mockKafka)

	t.Run("comment publishes an event", func(t *testing.T) {
		mockWriter.EXPECT().AppendComment(gomock.Any(), gomock.Any()).Return(nil)
		mockKafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.AddComment(context.Background(), uuid.New(), uuid.New(), "Nice shot!")
		assert.NoError(t, err)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		mockWriter.EXPECT().AppendComment(gomock.Any(), gomock.Any()).Return(nil)
		mockKafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		err := svc.AddComment(context.Background(), uuid.New(), uuid.New(), "Nice shot!")
		assert.NoError(t, err)
	})
}
