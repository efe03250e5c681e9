package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orgindex/internal/config"
	"orgindex/internal/http"
	"orgindex/internal/indexer"
	"orgindex/internal/service"
	"orgindex/internal/storage"
	"orgindex/internal/vault"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	vaultRepo := storage.NewVaultRepo(db)
	noteRepo := storage.NewNoteRepo(db)
	headlineRepo := storage.NewHeadlineRepo(db)

	// Initialize vault manager
	roots := make([]vault.Root, len(cfg.Vaults))
	for i, v := range cfg.Vaults {
		roots[i] = vault.Root{Name: v.Name, Path: v.Path}
	}
	vaultManager, err := vault.NewManager(ctx, vaultRepo, roots, cfg.ExcludePatterns)
	if err != nil {
		log.Fatalf("Failed to initialize vault manager: %v", err)
	}
	for _, v := range vaultManager.Vaults() {
		slog.Info("Vault registered", "name", v.Name, "root", v.RootPath)
	}
	warnUnconfiguredVaults(ctx, vaultRepo, vaultManager)

	parseCfg := cfg.ParseConfig()
	slog.Info("Keyword vocabulary", "todo", parseCfg.TodoKeywords, "done", parseCfg.DoneKeywords)

	// Create indexing pipeline
	indexerPipeline := indexer.NewPipeline(vaultManager, noteRepo, headlineRepo, parseCfg)
	headlineService := service.NewHeadlineService(parseCfg, headlineRepo)

	// Create router with dependencies
	deps := &http.Deps{
		HeadlineService: headlineService,
		Indexer:         indexerPipeline,
		DB:              db,
		VaultManager:    vaultManager,
		Extractor:       indexer.NewOutlineExtractor(parseCfg),
	}
	router := http.NewRouter(deps)

	// Start indexing in background after router is ready
	go func() {
		slog.Info("Starting background indexing of vaults")
		if err := indexerPipeline.IndexAll(ctx); err != nil {
			slog.Error("Indexing completed with errors", "error", err)
		} else {
			slog.Info("Indexing completed successfully")
		}

		if !cfg.Watch {
			return
		}
		slog.Info("Watching vaults for changes")
		if err := indexer.NewWatcher(indexerPipeline, indexer.DefaultDebounce).Run(ctx); err != nil {
			slog.Error("Watcher stopped", "error", err)
		}
	}()

	// Start API server
	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("API server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
	slog.Info("API server stopped")
}

// warnUnconfiguredVaults logs vaults still present in the database that are no
// longer configured. Their notes stay searchable until the index is cleared.
func warnUnconfiguredVaults(ctx context.Context, vaultRepo storage.VaultStore, manager *vault.Manager) {
	stored, err := vaultRepo.ListAll(ctx)
	if err != nil {
		slog.Warn("Failed to list stored vaults", "error", err)
		return
	}
	for _, v := range stored {
		if _, err := manager.VaultByName(v.Name); err != nil {
			slog.Warn("Stored vault is not configured", "name", v.Name, "root", v.RootPath)
		}
	}
}
