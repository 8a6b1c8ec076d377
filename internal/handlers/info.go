package handlers

import (
	"context"
	"net/http"

	"github.com/photoshare/backend/internal/logger"
	"github.com/photoshare/backend/internal/models"
)

// SchemaInfoGetter defines the interface that the schema-info service
// must implement.
type SchemaInfoGetter interface {
	GetSchemaInfo(ctx context.Context) (*models.SchemaInfoDB, error)
}

// NewInfoHandler returns an HTTP handler for the schema-info diagnostic.
// @Summary Schema info
// @Description Returns the singleton schema-info record.
// @Tags test
// @Produce json
// @Success 200 {object} models.SchemaInfoDB "Schema info"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /test/info [get]
func NewInfoHandler(svc SchemaInfoGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := svc.GetSchemaInfo(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, info)
	}
}
