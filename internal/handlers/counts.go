package handlers

import (
	"context"
	"net/http"

	"github.com/photoshare/backend/internal/logger"
)

// countedCollections are the collections reported by /test/counts.
var countedCollections = []string{"user", "photo", "schemaInfo"}

// CollectionCountser defines the interface that the counting service
// must implement.
type CollectionCountser interface {
	GetCollectionCounts(ctx context.Context, collections []string) (map[string]int64, error)
}

// NewCountsHandler returns an HTTP handler for the collection-count
// diagnostic. Any failed count fails the whole response.
// @Summary Collection counts
// @Description Returns the population count of each collection, computed concurrently.
// @Tags test
// @Produce json
// @Success 200 {object} map[string]int64 "Counts keyed by collection name"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /test/counts [get]
func NewCountsHandler(svc CollectionCountser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := svc.GetCollectionCounts(r.Context(), countedCollections)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, counts)
	}
}
