package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/photoshare/backend/internal/logger"
	"github.com/photoshare/backend/internal/models"
)

// collectionTables maps the externally visible collection names to the
// tables backing them. Count refuses names outside this map so the
// collection name can never reach the SQL text unchecked.
var collectionTables = map[string]string{
	"user":       "users",
	"photo":      "photos",
	"schemaInfo": "schema_info",
}

type StatsReadRepository struct {
	db *sqlx.DB
}

func NewStatsReadRepository(db *sqlx.DB) *StatsReadRepository {
	return &StatsReadRepository{db: db}
}

// Count returns the number of documents in the named collection.
func (r *StatsReadRepository) Count(ctx context.Context, collection string) (int64, error) {
	table, ok := collectionTables[collection]
	if !ok {
		return 0, fmt.Errorf("unknown collection %q", collection)
	}

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)

	var count int64
	err := r.db.GetContext(ctx, &count, query)

	logger.Log.Infow("count query",
		"query", query,
		"collection", collection,
		"result", count,
		"error", err,
	)

	return count, err
}

type SchemaInfoReadRepository struct {
	db *sqlx.DB
}

func NewSchemaInfoReadRepository(db *sqlx.DB) *SchemaInfoReadRepository {
	return &SchemaInfoReadRepository{db: db}
}

// Get returns the singleton schema-info record. An absent record is an
// infrastructure error, not a not-found condition.
func (r *SchemaInfoReadRepository) Get(ctx context.Context) (*models.SchemaInfoDB, error) {
	const query = `
		SELECT version
		FROM schema_info
		LIMIT 1
	`

	var info models.SchemaInfoDB
	err := r.db.GetContext(ctx, &info, query)

	logger.Log.Infow("schema info query",
		"query", strings.Join(strings.Fields(query), " "),
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("missing schema info")
		}
		return nil, err
	}
	return &info, nil
}
