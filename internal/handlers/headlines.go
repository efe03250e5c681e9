package handlers

import (
	"net/http"
	"strconv"

	"orgindex/internal/contextutil"
	"orgindex/internal/org"
	"orgindex/internal/service"
)

// HeadlinesHandler handles HTTP requests for searching indexed headlines.
type HeadlinesHandler struct {
	headlineService service.HeadlineService
}

// NewHeadlinesHandler creates a new HeadlinesHandler.
func NewHeadlinesHandler(headlineService service.HeadlineService) *HeadlinesHandler {
	return &HeadlinesHandler{headlineService: headlineService}
}

// HeadlineItem is one search result.
type HeadlineItem struct {
	Vault     string    `json:"vault"`
	RelPath   string    `json:"rel_path"`
	NoteTitle string    `json:"note_title"`
	Line      int       `json:"line"`
	Path      string    `json:"path"`
	Title     org.Title `json:"title"`
}

// HeadlinesResponse represents the response from the headlines endpoint.
type HeadlinesResponse struct {
	Headlines []HeadlineItem `json:"headlines"`
	Count     int            `json:"count"`
}

// ServeHTTP handles GET /api/headlines.
// Query parameters: vault, keyword, tag, priority, level, q, archived, limit.
func (h *HeadlinesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	q := r.URL.Query()
	req := service.SearchRequest{
		Vault:           q.Get("vault"),
		Keyword:         q.Get("keyword"),
		Tag:             q.Get("tag"),
		Priority:        q.Get("priority"),
		Query:           q.Get("q"),
		IncludeArchived: q.Get("archived") == "true",
	}

	var err error
	if req.Level, err = intParam(q.Get("level")); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid level")
		return
	}
	if req.Limit, err = intParam(q.Get("limit")); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid limit")
		return
	}

	resp, err := h.headlineService.Search(ctx, req)
	if err != nil {
		logger.WarnContext(ctx, "headline search failed", "error", err)
		writeServiceError(w, err)
		return
	}

	items := make([]HeadlineItem, len(resp.Headlines))
	for i, hl := range resp.Headlines {
		items[i] = HeadlineItem{
			Vault:     hl.Vault,
			RelPath:   hl.RelPath,
			NoteTitle: hl.NoteTitle,
			Line:      hl.Line,
			Path:      hl.Path,
			Title:     hl.Title,
		}
	}

	if err := writeJSON(w, http.StatusOK, HeadlinesResponse{Headlines: items, Count: len(items)}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
