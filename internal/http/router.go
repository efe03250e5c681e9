package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"orgindex/internal/handlers"
	"orgindex/internal/indexer"
	"orgindex/internal/service"
	"orgindex/internal/vault"
)

// Indexer runs indexing and reports statistics. *indexer.Pipeline implements it.
type Indexer interface {
	handlers.IndexRunner
	handlers.StatsSource
}

// Deps holds dependencies for the HTTP router.
type Deps struct {
	HeadlineService service.HeadlineService
	Indexer         Indexer
	DB              handlers.Pinger
	VaultManager    *vault.Manager
	Extractor       *indexer.OutlineExtractor
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Request-scoped logger for handlers
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)

	// Add CORS middleware
	r.Use(CORS)

	parseHandler := handlers.NewParseHandler(deps.HeadlineService)
	headlinesHandler := handlers.NewHeadlinesHandler(deps.HeadlineService)
	indexHandler := handlers.NewIndexHandler(deps.Indexer)
	statsHandler := handlers.NewStatsHandler(deps.Indexer)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/parse", parseHandler)
		r.Method(http.MethodGet, "/headlines", headlinesHandler)
		r.Method(http.MethodPost, "/index", indexHandler)
		r.Method(http.MethodGet, "/stats", statsHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	if deps.VaultManager != nil && deps.Extractor != nil {
		noteHandler := handlers.NewNoteHandler(deps.VaultManager, deps.Extractor)
		r.Method(http.MethodGet, "/notes/{vault}/*", noteHandler)
	}

	return r
}
