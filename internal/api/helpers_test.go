package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/nvallens/studydeck-api/internal/api"
	"github.com/nvallens/studydeck-api/internal/domain"
	"github.com/nvallens/studydeck-api/internal/generation"
	"github.com/nvallens/studydeck-api/internal/mocks"
	"github.com/nvallens/studydeck-api/internal/service"
	"github.com/nvallens/studydeck-api/internal/store"
	"github.com/stretchr/testify/require"
)

// apiFixture hosts the full HTTP surface over real services backed by a
// temp-dir store, with the LLM generator mocked out.
type apiFixture struct {
	server    *httptest.Server
	sets      service.SetService
	reviews   service.ReviewService
	generator *mocks.Generator
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := store.New(t.TempDir(), logger)
	require.NoError(t, err)
	require.NoError(t, st.Load())

	sets := service.NewSetService(st, logger)
	reviews := service.NewReviewService(st, logger)
	generator := new(mocks.Generator)
	genService, err := generation.NewService(generator, sets, logger, 5*time.Second)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)

	setHandler := api.NewSetHandler(sets, logger)
	reviewHandler := api.NewReviewHandler(reviews, logger)
	generationHandler := api.NewGenerationHandler(genService, logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sets", setHandler.CreateSet)
		r.Get("/sets", setHandler.ListSets)
		r.Get("/sets/{setID}", setHandler.GetSet)
		r.Delete("/sets/{setID}", setHandler.DeleteSet)
		r.Get("/courses/{courseID}/sets", setHandler.ListSetsByCourse)
		r.Post("/sets/{setID}/cards", setHandler.AddFlashcards)
		r.Post("/sets/{setID}/cards/{cardID}/review", reviewHandler.RecordReview)
		r.Get("/sets/{setID}/review-queue", reviewHandler.GetReviewQueue)
		r.Get("/sets/{setID}/progress", reviewHandler.GetProgress)
		r.Post("/sets/{setID}/generate", generationHandler.Generate)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &apiFixture{
		server:    server,
		sets:      sets,
		reviews:   reviews,
		generator: generator,
	}
}

// do sends a request with an optional JSON body and returns the response.
func (f *apiFixture) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, f.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// decode unmarshals the response body into out.
func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// createSet makes a set through the service layer for test setup.
func (f *apiFixture) createSet(t *testing.T, title string) *domain.FlashcardSet {
	t.Helper()
	set, err := f.sets.CreateSet(context.Background(), service.CreateSetParams{
		CourseID: 12345,
		Title:    title,
	})
	require.NoError(t, err)
	return set
}

// addCards appends cards to a set through the service layer.
func (f *apiFixture) addCards(t *testing.T, setID uuid.UUID, candidates ...domain.CardCandidate) []domain.Flashcard {
	t.Helper()
	cards, err := f.sets.AddFlashcards(context.Background(), setID, candidates)
	require.NoError(t, err)
	return cards
}
