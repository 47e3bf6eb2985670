package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nvallens/studydeck-api/internal/config"
	"github.com/nvallens/studydeck-api/internal/generation"
	"github.com/nvallens/studydeck-api/internal/platform/gemini"
	"github.com/nvallens/studydeck-api/internal/service"
	"github.com/nvallens/studydeck-api/internal/store"
)

// application holds the dependencies shared by the HTTP layer: the
// single store instance and the services constructed around it.
type application struct {
	config            *config.Config
	logger            *slog.Logger
	store             *store.Store
	setService        service.SetService
	reviewService     service.ReviewService
	generationService *generation.Service
}

// newApplication constructs and wires all application components. The
// store is loaded here so a corrupt document fails startup rather than
// the first request.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	st, err := store.New(cfg.Storage.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	if err := st.Load(); err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	setService := service.NewSetService(st, logger)
	reviewService := service.NewReviewService(st, logger)

	generator, err := gemini.NewGenerator(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	generationService, err := generation.NewService(
		generator,
		setService,
		logger,
		time.Duration(cfg.LLM.TimeoutSeconds)*time.Second,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	return &application{
		config:            cfg,
		logger:            logger,
		store:             st,
		setService:        setService,
		reviewService:     reviewService,
		generationService: generationService,
	}, nil
}

// cleanup releases application resources during shutdown. The store
// persists synchronously on every mutation, so there is nothing to
// flush here; the hook exists for future resources.
func (app *application) cleanup() {
	app.logger.Info("application cleanup complete")
}
