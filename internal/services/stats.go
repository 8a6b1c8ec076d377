package services

import (
	"context"
	"sync"

	"github.com/photoshare/backend/internal/logger"
	"github.com/photoshare/backend/internal/models"
)

// CollectionCounter counts the documents of one named collection.
type CollectionCounter interface {
	Count(ctx context.Context, collection string) (int64, error)
}

// SchemaInfoReader reads the singleton schema-info record.
type SchemaInfoReader interface {
	Get(ctx context.Context) (*models.SchemaInfoDB, error)
}

// StatsService serves the diagnostic endpoints: schema info and
// collection population counts.
type StatsService struct {
	counter CollectionCounter
	schema  SchemaInfoReader
}

// NewStatsService creates a new StatsService.
func NewStatsService(counter CollectionCounter, schema SchemaInfoReader) *StatsService {
	return &StatsService{
		counter: counter,
		schema:  schema,
	}
}

// GetSchemaInfo returns the schema-info record.
func (svc *StatsService) GetSchemaInfo(ctx context.Context) (*models.SchemaInfoDB, error) {
	info, err := svc.schema.Get(ctx)
	if err != nil {
		logger.Log.Errorw("failed to get schema info", "err", err)
		return nil, err
	}
	return info, nil
}

// GetCollectionCounts counts every named collection concurrently and
// waits for all counts to finish. If any count fails, the whole call
// fails with the first observed error and no partial results are
// returned, even for counts that succeeded.
func (svc *StatsService) GetCollectionCounts(ctx context.Context, collections []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(collections))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, name := range collections {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			count, err := svc.counter.Count(ctx, name)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			counts[name] = count
		}(name)
	}

	wg.Wait()

	if firstErr != nil {
		logger.Log.Errorw("collection count failed", "err", firstErr)
		return nil, firstErr
	}
	return counts, nil
}
