// Package main implements the entry point for the StudyDeck API server,
// which manages course flashcard sets, spaced review progress, and
// LLM-backed flashcard generation.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/nvallens/studydeck-api/internal/config"
	"github.com/nvallens/studydeck-api/internal/platform/logger"
)

// main initializes configuration, logging, storage, and services, then
// starts the HTTP server and blocks until shutdown.
func main() {
	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(ctx, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, and wires the
// application components together.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"data_dir", cfg.Storage.DataDir)

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to build application: %w", err)
	}

	return app, nil
}
