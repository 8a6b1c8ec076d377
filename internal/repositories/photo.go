package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/photoshare/backend/internal/logger"
	"github.com/photoshare/backend/internal/models"
)

const pgForeignKeyViolation = "23503"

type PhotoReadRepository struct {
	db *sqlx.DB
}

func NewPhotoReadRepository(db *sqlx.DB) *PhotoReadRepository {
	return &PhotoReadRepository{db: db}
}

// ListByUserID returns the user's photos in a stable order.
func (r *PhotoReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.PhotoDB, error) {
	const query = `
		SELECT photo_id, file_name, date_time, user_id
		FROM photos
		WHERE user_id = $1
		ORDER BY date_time, photo_id
	`

	var photos []models.PhotoDB
	err := r.db.SelectContext(ctx, &photos, query, userID)

	logger.Log.Infow("photo query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"count", len(photos),
		"error", err,
	)

	return photos, err
}

// ListCommentsByPhotoIDs returns every comment of the given photos,
// ordered by append order within each photo.
func (r *PhotoReadRepository) ListCommentsByPhotoIDs(ctx context.Context, photoIDs []uuid.UUID) ([]models.CommentDB, error) {
	if len(photoIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT comment_id, photo_id, user_id, comment, date_time, seq
		FROM comments
		WHERE photo_id IN (?)
		ORDER BY seq
	`, photoIDs)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var comments []models.CommentDB
	err = r.db.SelectContext(ctx, &comments, query, args...)

	logger.Log.Infow("comment query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"count", len(comments),
		"error", err,
	)

	return comments, err
}

type PhotoWriteRepository struct {
	db *sqlx.DB
}

func NewPhotoWriteRepository(db *sqlx.DB) *PhotoWriteRepository {
	return &PhotoWriteRepository{db: db}
}

// Save inserts a photo. The owner reference is strong: a violation of
// the users foreign key surfaces as ErrNotFound.
func (r *PhotoWriteRepository) Save(ctx context.Context, photo models.PhotoDB) error {
	const query = `
		INSERT INTO photos (photo_id, file_name, date_time, user_id)
		VALUES ($1, $2, $3, $4)
	`
	args := []any{photo.PhotoID, photo.FileName, photo.DateTime, photo.UserID}

	_, err := r.db.ExecContext(ctx, query, args...)

	logger.Log.Infow("photo insert",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// AppendComment atomically appends one comment to a photo's sequence.
// The seq column assigns append order; a missing photo surfaces as
// ErrNotFound via the photos foreign key.
func (r *PhotoWriteRepository) AppendComment(ctx context.Context, comment models.CommentDB) error {
	const query = `
		INSERT INTO comments (comment_id, photo_id, user_id, comment, date_time)
		VALUES ($1, $2, $3, $4, $5)
	`
	args := []any{comment.CommentID, comment.PhotoID, comment.UserID, comment.Comment, comment.DateTime}

	_, err := r.db.ExecContext(ctx, query, args...)

	logger.Log.Infow("comment insert",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return ErrNotFound
		}
		return err
	}
	return nil
}
