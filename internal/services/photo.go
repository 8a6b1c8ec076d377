package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/photoshare/backend/internal/logger"
	"github.com/photoshare/backend/internal/models"
	"github.com/photoshare/backend/internal/repositories"
)

var (
	// ErrPhotoNotFound is returned when a referenced photo does not exist.
	ErrPhotoNotFound = errors.New("photo not found")

	// ErrEmptyUpload is returned when an upload carries no bytes.
	ErrEmptyUpload = errors.New("photo required")

	// ErrEmptyComment is returned when a comment has no text.
	ErrEmptyComment = errors.New("comment required")
)

// PhotoReader defines read operations over photos and their comments.
type PhotoReader interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.PhotoDB, error)
	ListCommentsByPhotoIDs(ctx context.Context, photoIDs []uuid.UUID) ([]models.CommentDB, error)
}

// PhotoWriter defines write operations over photos and their comments.
type PhotoWriter interface {
	Save(ctx context.Context, photo models.PhotoDB) error
	AppendComment(ctx context.Context, comment models.CommentDB) error
}

// AuthorResolver resolves user ids for existence checks and author
// projections.
type AuthorResolver interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	GetPublicByIDs(ctx context.Context, userIDs []uuid.UUID) ([]models.UserPublic, error)
}

// BlobPutter persists raw photo bytes under a storage key.
type BlobPutter interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PhotoService handles photo aggregation, ingestion, and commenting.
type PhotoService struct {
	photoReader PhotoReader
	photoWriter PhotoWriter
	users       AuthorResolver
	blobs       BlobPutter
	kafkaWriter KafkaWriter
}

// NewPhotoService creates a new PhotoService.
func NewPhotoService(
	photoReader PhotoReader,
	photoWriter PhotoWriter,
	users AuthorResolver,
	blobs BlobPutter,
	kafkaWriter KafkaWriter,
) *PhotoService {
	return &PhotoService{
		photoReader: photoReader,
		photoWriter: photoWriter,
		users:       users,
		blobs:       blobs,
		kafkaWriter: kafkaWriter,
	}
}

// publishActivity publishes a content event to Kafka. Publishing is best
// effort and never fails the request.
func (s *PhotoService) publishActivity(ctx context.Context, activity models.Activity) {
	if s.kafkaWriter == nil {
		return
	}

	data, err := json.Marshal(activity)
	if err != nil {
		logger.Log.Errorw("failed to marshal activity", "activity_id", activity.ActivityID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(activity.ActivityID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish activity", "activity_id", activity.ActivityID, "error", err)
	}
}

// GetPhotosOfUser returns the user's photos with their comments, each
// comment carrying the author's public projection. Author ids referenced
// by the comments are resolved in one batched lookup; a comment whose
// author no longer exists keeps a nil author instead of failing the
// request.
func (s *PhotoService) GetPhotosOfUser(ctx context.Context, userID uuid.UUID) ([]models.PhotoView, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Log.Errorw("failed to check user exists", "user_id", userID, "err", err)
		return nil, err
	}

	photos, err := s.photoReader.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list photos", "user_id", userID, "err", err)
		return nil, err
	}

	photoIDs := make([]uuid.UUID, len(photos))
	for i, p := range photos {
		photoIDs[i] = p.PhotoID
	}

	comments, err := s.photoReader.ListCommentsByPhotoIDs(ctx, photoIDs)
	if err != nil {
		logger.Log.Errorw("failed to list comments", "user_id", userID, "err", err)
		return nil, err
	}

	// One lookup per distinct author, not one per comment.
	seen := make(map[uuid.UUID]struct{})
	var authorIDs []uuid.UUID
	for _, c := range comments {
		if _, ok := seen[c.UserID]; !ok {
			seen[c.UserID] = struct{}{}
			authorIDs = append(authorIDs, c.UserID)
		}
	}

	authors, err := s.users.GetPublicByIDs(ctx, authorIDs)
	if err != nil {
		logger.Log.Errorw("failed to resolve comment authors", "user_id", userID, "err", err)
		return nil, err
	}

	authorByID := make(map[uuid.UUID]models.UserPublic, len(authors))
	for _, a := range authors {
		authorByID[a.UserID] = a
	}

	commentsByPhoto := make(map[uuid.UUID][]models.CommentView)
	for _, c := range comments {
		view := models.CommentView{
			CommentID: c.CommentID,
			Comment:   c.Comment,
			DateTime:  c.DateTime,
		}
		if author, ok := authorByID[c.UserID]; ok {
			a := author
			view.User = &a
		}
		commentsByPhoto[c.PhotoID] = append(commentsByPhoto[c.PhotoID], view)
	}

	views := make([]models.PhotoView, len(photos))
	for i, p := range photos {
		cs := commentsByPhoto[p.PhotoID]
		if cs == nil {
			cs = []models.CommentView{}
		}
		views[i] = models.PhotoView{
			PhotoID:  p.PhotoID,
			FileName: p.FileName,
			DateTime: p.DateTime,
			UserID:   p.UserID,
			Comments: cs,
		}
	}

	return views, nil
}

// UploadPhoto stores the uploaded bytes and records the photo metadata.
// The storage name prefixes the original filename with the upload
// timestamp so concurrent uploads of the same file cannot collide. If
// the metadata write fails after the blob write, the blob is left behind
// and logged for reconciliation.
func (s *PhotoService) UploadPhoto(ctx context.Context, ownerID uuid.UUID, data []byte, originalName string) (*models.PhotoDB, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	now := time.Now()
	fileName := fmt.Sprintf("U%d%s", now.UnixMilli(), originalName)

	if err := s.blobs.Put(ctx, fileName, bytes.NewReader(data), int64(len(data)), "application/octet-stream"); err != nil {
		logger.Log.Errorw("failed to write photo blob", "file_name", fileName, "err", err)
		return nil, err
	}

	photo := models.PhotoDB{
		PhotoID:  uuid.New(),
		FileName: fileName,
		DateTime: now,
		UserID:   ownerID,
	}

	if err := s.photoWriter.Save(ctx, photo); err != nil {
		// The blob stays behind; record the key so it can be swept.
		logger.Log.Errorw("photo metadata write failed, blob orphaned", "file_name", fileName, "err", err)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.publishActivity(ctx, models.Activity{
		ActivityID: uuid.NewString(),
		Timestamp:  now.Unix(),
		Operation:  "photo_uploaded",
		UserID:     ownerID.String(),
		PhotoID:    photo.PhotoID.String(),
	})

	return &photo, nil
}

// AddComment appends one comment to the photo's sequence.
func (s *PhotoService) AddComment(ctx context.Context, photoID, userID uuid.UUID, text string) error {
	if text == "" {
		return ErrEmptyComment
	}

	comment := models.CommentDB{
		CommentID: uuid.New(),
		PhotoID:   photoID,
		UserID:    userID,
		Comment:   text,
		DateTime:  time.Now(),
	}

	if err := s.photoWriter.AppendComment(ctx, comment); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPhotoNotFound
		}
		logger.Log.Errorw("failed to append comment", "photo_id", photoID, "err", err)
		return err
	}

	s.publishActivity(ctx, models.Activity{
		ActivityID: uuid.NewString(),
		Timestamp:  comment.DateTime.Unix(),
		Operation:  "comment_added",
		UserID:     userID.String(),
		PhotoID:    photoID.String(),
	})

	return nil
}
