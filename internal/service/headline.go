package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_headline_service.go -package=mocks orgindex/internal/service HeadlineService

import (
	"context"
	"fmt"
	"strings"

	"orgindex/internal/contextutil"
	"orgindex/internal/org"
	"orgindex/internal/storage"
)

const (
	// DefaultSearchLimit applies when a search request sets no limit.
	DefaultSearchLimit = 100
	// MaxSearchLimit caps the number of headlines a search returns.
	MaxSearchLimit = 1000
)

// ParseRequest asks for one headline to be parsed.
// A nil keyword list falls back to the configured vocabulary; an empty
// non-nil list disables that half of it.
type ParseRequest struct {
	Text         string
	TodoKeywords []string
	DoneKeywords []string
}

// ParseResponse is the parsed headline and the input left after it.
type ParseResponse struct {
	Title org.Title
	Raw   string
	Rest  string
}

// SearchRequest filters stored headlines. Zero fields are ignored.
type SearchRequest struct {
	Vault           string
	Keyword         string
	Tag             string
	Priority        string
	Level           int
	Query           string
	IncludeArchived bool
	Limit           int
}

// HeadlineResult is a stored headline with the note it belongs to.
type HeadlineResult struct {
	Vault     string
	RelPath   string
	NoteTitle string
	Line      int
	Path      string
	Title     org.Title
}

// SearchResponse holds the matching headlines in vault, file and document order.
type SearchResponse struct {
	Headlines []HeadlineResult
}

// HeadlineService parses headlines and searches the index.
type HeadlineService interface {
	// ParseTitle parses the headline at the start of req.Text.
	ParseTitle(ctx context.Context, req ParseRequest) (ParseResponse, error)
	// Search returns indexed headlines matching req.
	Search(ctx context.Context, req SearchRequest) (SearchResponse, error)
}

// headlineService implements HeadlineService.
type headlineService struct {
	cfg       org.ParseConfig
	headlines storage.HeadlineStore
}

// NewHeadlineService creates a new HeadlineService parsing with cfg by default.
func NewHeadlineService(cfg org.ParseConfig, headlines storage.HeadlineStore) HeadlineService {
	return &headlineService{
		cfg:       cfg,
		headlines: headlines,
	}
}

// ParseTitle parses the headline at the start of req.Text.
func (s *headlineService) ParseTitle(ctx context.Context, req ParseRequest) (ParseResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Text) == "" {
		logger.WarnContext(ctx, "empty text in parse request")
		return ParseResponse{}, &ValidationError{
			Field:   "text",
			Message: "cannot be empty",
		}
	}
	if !strings.HasPrefix(req.Text, "*") {
		logger.WarnContext(ctx, "parse request does not start with a headline")
		return ParseResponse{}, &ValidationError{
			Field:   "text",
			Message: "must start with '*'",
		}
	}

	cfg := s.cfg
	if req.TodoKeywords != nil {
		cfg.TodoKeywords = req.TodoKeywords
	}
	if req.DoneKeywords != nil {
		cfg.DoneKeywords = req.DoneKeywords
	}

	rest, title, raw, err := org.ParseTitle(req.Text, cfg)
	if err != nil {
		return ParseResponse{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	logger.DebugContext(ctx, "parsed headline", "level", title.Level, "keyword", title.Keyword, "tags", len(title.Tags))
	return ParseResponse{
		Title: title.Detach(),
		Raw:   strings.Clone(raw),
		Rest:  strings.Clone(rest),
	}, nil
}

// Search returns indexed headlines matching req.
func (s *headlineService) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.Limit < 0 {
		return SearchResponse{}, &ValidationError{Field: "limit", Message: "must not be negative"}
	}
	if req.Level < 0 {
		return SearchResponse{}, &ValidationError{Field: "level", Message: "must not be negative"}
	}
	if req.Priority != "" && (len(req.Priority) != 1 || req.Priority[0] < 'A' || req.Priority[0] > 'Z') {
		return SearchResponse{}, &ValidationError{Field: "priority", Message: "must be a letter A-Z"}
	}

	limit := req.Limit
	if limit == 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	matches, err := s.headlines.Search(ctx, storage.HeadlineFilter{
		VaultName:       req.Vault,
		Keyword:         req.Keyword,
		Tag:             req.Tag,
		Priority:        req.Priority,
		Level:           req.Level,
		Query:           req.Query,
		IncludeArchived: req.IncludeArchived,
		Limit:           limit,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to search headlines", "error", err)
		return SearchResponse{}, WrapError(err, "failed to search headlines")
	}

	resp := SearchResponse{Headlines: make([]HeadlineResult, len(matches))}
	for i, m := range matches {
		resp.Headlines[i] = HeadlineResult{
			Vault:     m.VaultName,
			RelPath:   m.RelPath,
			NoteTitle: m.NoteTitle,
			Line:      m.Line,
			Path:      m.Path,
			Title:     m.Title,
		}
	}

	logger.InfoContext(ctx, "headline search completed", "results", len(resp.Headlines))
	return resp, nil
}
