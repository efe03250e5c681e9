package handlers

import (
	"context"
	"net/http"

	"orgindex/internal/contextutil"
	"orgindex/internal/indexer"
)

// StatsSource reports index statistics.
type StatsSource interface {
	Stats(ctx context.Context) (*indexer.IndexStats, error)
}

// StatsHandler serves GET /api/stats.
type StatsHandler struct {
	source StatsSource
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(source StatsSource) *StatsHandler {
	return &StatsHandler{source: source}
}

// ServeHTTP handles HTTP requests for index statistics.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	stats, err := h.source.Stats(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to compute stats", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	if err := writeJSON(w, http.StatusOK, stats); err != nil {
		logger.ErrorContext(ctx, "failed to encode stats", "error", err)
	}
}
