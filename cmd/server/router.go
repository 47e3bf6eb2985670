package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nvallens/studydeck-api/internal/api"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Create API handlers using the application's services
	setHandler := api.NewSetHandler(app.setService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	generationHandler := api.NewGenerationHandler(app.generationService, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Set lifecycle
		r.Post("/sets", setHandler.CreateSet)
		r.Get("/sets", setHandler.ListSets)
		r.Get("/sets/{setID}", setHandler.GetSet)
		r.Delete("/sets/{setID}", setHandler.DeleteSet)
		r.Get("/courses/{courseID}/sets", setHandler.ListSetsByCourse)
		r.Post("/sets/{setID}/cards", setHandler.AddFlashcards)

		// Review endpoints
		r.Post("/sets/{setID}/cards/{cardID}/review", reviewHandler.RecordReview)
		r.Get("/sets/{setID}/review-queue", reviewHandler.GetReviewQueue)
		r.Get("/sets/{setID}/progress", reviewHandler.GetProgress)

		// Generation endpoint
		r.Post("/sets/{setID}/generate", generationHandler.Generate)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
