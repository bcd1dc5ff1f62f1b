// Package main implements the entry point for the Recall API server
// which stores study decks and provides LLM integration for flashcard
// generation.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/recall-app/recall-api/internal/api"
	"github.com/recall-app/recall-api/internal/config"
	"github.com/recall-app/recall-api/internal/extract"
	"github.com/recall-app/recall-api/internal/generation"
	"github.com/recall-app/recall-api/internal/platform/gemini"
	"github.com/recall-app/recall-api/internal/platform/logger"
	"github.com/recall-app/recall-api/internal/platform/postgres"
	"github.com/recall-app/recall-api/internal/service"
)

// shutdownTimeout bounds how long in-flight requests may run once a
// termination signal arrives.
const shutdownTimeout = 15 * time.Second

// main is the entry point for the recall-api server.
// It initializes configuration, sets up logging, establishes the database
// connection, injects dependencies, and starts the HTTP server.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}

// run wires the application together and blocks until shutdown.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if err := runMigrations(cfg.Database.URL); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to create database pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	router, err := buildRouter(cfg, pool, appLogger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped cleanly")
	return nil
}

// buildRouter constructs the generation pipeline, services, and handlers.
func buildRouter(cfg *config.Config, pool *pgxpool.Pool, appLogger *slog.Logger) (http.Handler, error) {
	deckStore := postgres.NewDeckStore(pool, appLogger)
	cardStore := postgres.NewCardStore(pool, appLogger)
	settingsStore := postgres.NewSettingsStore(pool, appLogger)

	invoker, err := gemini.NewInvoker(appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create model invoker: %w", err)
	}

	extractor, err := extract.NewExtractor(invoker, cfg.LLM.OCRModel, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create content extractor: %w", err)
	}

	genCfg := generation.Config{
		Models: cfg.LLM.Models,
		Prompt: generation.PromptConfig{
			MinDocumentChars:  cfg.LLM.MinDocumentChars,
			MaxDocumentChars:  cfg.LLM.MaxDocumentChars,
			EnrichmentPercent: cfg.LLM.EnrichmentPercent,
		},
		GroundedTemperature: cfg.LLM.GroundedTemperature,
		CreativeTemperature: cfg.LLM.CreativeTemperature,
	}
	if cfg.LLM.RequestTimeoutSeconds > 0 {
		genCfg.InvokeTimeout = time.Duration(cfg.LLM.RequestTimeoutSeconds) * time.Second
	}

	orchestrator, err := generation.NewOrchestrator(
		settingsSourceAdapter{store: settingsStore, fallbackKey: cfg.LLM.APIKey},
		extractor,
		invoker,
		genCfg,
		appLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation orchestrator: %w", err)
	}

	deckService, err := service.NewDeckService(orchestrator, deckStore, cardStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck service: %w", err)
	}

	return api.NewRouter(api.RouterConfig{
		DeckService:   deckService,
		SettingsStore: settingsStore,
	}), nil
}
