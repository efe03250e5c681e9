package handlers

import (
	"encoding/json"
	"net/http"

	"orgindex/internal/contextutil"
	"orgindex/internal/org"
	"orgindex/internal/service"
)

// maxParseBody bounds the size of a parse request.
const maxParseBody = 1 << 20

// ParseHandler handles HTTP requests for parsing a single headline.
type ParseHandler struct {
	headlineService service.HeadlineService
}

// NewParseHandler creates a new ParseHandler.
func NewParseHandler(headlineService service.HeadlineService) *ParseHandler {
	return &ParseHandler{headlineService: headlineService}
}

// ParseRequest represents the HTTP request payload for parsing.
// Omitted keyword lists use the server vocabulary.
type ParseRequest struct {
	Text         string   `json:"text"`
	TodoKeywords []string `json:"todo_keywords,omitempty"`
	DoneKeywords []string `json:"done_keywords,omitempty"`
}

// ParseResponse represents the HTTP response payload for parsing.
type ParseResponse struct {
	Title org.Title `json:"title"`
	Raw   string    `json:"raw"`
	Rest  string    `json:"rest"`
}

// ServeHTTP handles HTTP requests for parsing.
func (h *ParseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ParseRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxParseBody)).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.headlineService.ParseTitle(ctx, service.ParseRequest{
		Text:         req.Text,
		TodoKeywords: req.TodoKeywords,
		DoneKeywords: req.DoneKeywords,
	})
	if err != nil {
		logger.WarnContext(ctx, "parse failed", "error", err)
		writeServiceError(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, ParseResponse{
		Title: resp.Title,
		Raw:   resp.Raw,
		Rest:  resp.Rest,
	}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
