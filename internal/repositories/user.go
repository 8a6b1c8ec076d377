package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/photoshare/backend/internal/logger"
	"github.com/photoshare/backend/internal/models"
)

const pgUniqueViolation = "23505"

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT user_id, first_name, last_name, location, description, occupation,
		       login_name, password_hash, created_at
		FROM users
		WHERE user_id = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserReadRepository) GetByLogin(ctx context.Context, loginName string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, first_name, last_name, location, description, occupation,
		       login_name, password_hash, created_at
		FROM users
		WHERE login_name = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, loginName)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{loginName},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns the public projection of every user. No sensitive fields
// leave the store for this operation.
func (r *UserReadRepository) List(ctx context.Context) ([]models.UserPublic, error) {
	const query = `
		SELECT user_id, first_name, last_name
		FROM users
		ORDER BY last_name, first_name
	`

	var users []models.UserPublic
	err := r.db.SelectContext(ctx, &users, query)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"count", len(users),
		"error", err,
	)

	return users, err
}

// GetPublicByIDs resolves a batch of user ids to public projections in a
// single query. Ids without a matching user are simply absent from the
// result.
func (r *UserReadRepository) GetPublicByIDs(ctx context.Context, userIDs []uuid.UUID) ([]models.UserPublic, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT user_id, first_name, last_name
		FROM users
		WHERE user_id IN (?)
	`, userIDs)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var users []models.UserPublic
	err = r.db.SelectContext(ctx, &users, query, args...)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"count", len(users),
		"error", err,
	)

	return users, err
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts the user in a single statement. Uniqueness of login_name
// is enforced by the constraint, so two concurrent registrations cannot
// both succeed; the loser gets ErrConflict.
func (r *UserWriteRepository) Save(ctx context.Context, user models.UserDB) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (user_id, first_name, last_name, location, description,
		                   occupation, login_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING user_id, first_name, last_name, location, description, occupation,
		          login_name, password_hash, created_at
	`
	args := []any{
		user.UserID, user.FirstName, user.LastName, user.Location,
		user.Description, user.Occupation, user.LoginName, user.PasswordHash,
	}

	var saved models.UserDB
	err := r.db.GetContext(ctx, &saved, query, args...)

	logger.Log.Infow("user insert",
		"query", strings.Join(strings.Fields(query), " "),
		"login_name", user.LoginName,
		"error", err,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &saved, nil
}
