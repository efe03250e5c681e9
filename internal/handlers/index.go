package handlers

import (
	"context"
	"net/http"
	"sync/atomic"

	"orgindex/internal/contextutil"
)

// IndexRunner rebuilds the headline index.
type IndexRunner interface {
	ClearAll(ctx context.Context) error
	IndexAll(ctx context.Context) error
}

// IndexHandler handles HTTP requests for triggering re-indexing.
type IndexHandler struct {
	runner  IndexRunner
	running atomic.Bool
	// done, when set, is called after each background run. Used by tests.
	done func()
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(runner IndexRunner) *IndexHandler {
	return &IndexHandler{runner: runner}
}

// IndexResponse represents the response from the index endpoint.
type IndexResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ServeHTTP handles HTTP requests for triggering re-indexing.
// Only one run happens at a time; a request during a run gets 409.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	force := r.URL.Query().Get("force") == "true"

	if !h.running.CompareAndSwap(false, true) {
		logger.WarnContext(ctx, "re-indexing already in progress")
		writeError(w, http.StatusConflict, "Indexing already in progress")
		return
	}

	if force {
		logger.InfoContext(ctx, "force re-indexing triggered via API")
	} else {
		logger.InfoContext(ctx, "re-indexing triggered via API")
	}

	// Indexing outlives the request, so it runs on a fresh context carrying
	// the request logger.
	go func() {
		defer func() {
			h.running.Store(false)
			if h.done != nil {
				h.done()
			}
		}()

		indexCtx := context.WithValue(context.Background(), contextutil.LoggerKey(), logger)
		if force {
			if err := h.runner.ClearAll(indexCtx); err != nil {
				logger.ErrorContext(indexCtx, "failed to clear existing data", "error", err)
				return
			}
		}
		if err := h.runner.IndexAll(indexCtx); err != nil {
			logger.ErrorContext(indexCtx, "re-indexing completed with errors", "error", err)
		} else {
			logger.InfoContext(indexCtx, "re-indexing completed successfully")
		}
	}()

	message := "Indexing started. Check server logs for progress."
	if force {
		message = "Force re-indexing started (all existing data cleared). Check server logs for progress."
	}
	_ = writeJSON(w, http.StatusAccepted, IndexResponse{
		Message: message,
		Status:  "accepted",
	})
}
