package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/nvallens/studydeck-api/internal/api"
	"github.com/nvallens/studydeck-api/internal/domain"
	"github.com/nvallens/studydeck-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerationHandler_Generate(t *testing.T) {
	t.Run("generates and commits cards", func(t *testing.T) {
		f := newAPIFixture(t)
		set := f.createSet(t, "Cell Structure")
		f.generator.On("GenerateCards", mock.Anything, "lecture notes", 2).
			Return([]domain.CardCandidate{
				{Question: "Q1", Answer: "A1"},
				{Question: "Q2", Answer: "A2"},
			}, nil).Once()

		resp := f.do(t, http.MethodPost, "/api/sets/"+set.ID.String()+"/generate", map[string]any{
			"context_text": "lecture notes",
			"num_cards":    2,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var cards []api.FlashcardResponse
		decode(t, resp, &cards)
		require.Len(t, cards, 2)
		assert.Equal(t, "Q1", cards[0].Question)

		// The generated cards are durably attached to the set.
		resp = f.do(t, http.MethodGet, "/api/sets/"+set.ID.String(), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got api.SetResponse
		decode(t, resp, &got)
		assert.Len(t, got.Cards, 2)
		f.generator.AssertExpectations(t)
	})

	t.Run("missing context text", func(t *testing.T) {
		f := newAPIFixture(t)
		set := f.createSet(t, "Cell Structure")

		resp := f.do(t, http.MethodPost, "/api/sets/"+set.ID.String()+"/generate", map[string]any{
			"num_cards": 2,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		f.generator.AssertNotCalled(t, "GenerateCards")
	})

	t.Run("non-positive card count", func(t *testing.T) {
		f := newAPIFixture(t)
		set := f.createSet(t, "Cell Structure")

		resp := f.do(t, http.MethodPost, "/api/sets/"+set.ID.String()+"/generate", map[string]any{
			"context_text": "lecture notes",
			"num_cards":    0,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		f.generator.AssertNotCalled(t, "GenerateCards")
	})

	t.Run("unknown set", func(t *testing.T) {
		f := newAPIFixture(t)
		resp := f.do(t, http.MethodPost, "/api/sets/6ba7b810-9dad-11d1-80b4-00c04fd430c8/generate", map[string]any{
			"context_text": "lecture notes",
			"num_cards":    2,
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		f.generator.AssertNotCalled(t, "GenerateCards")
	})

	t.Run("generation failure maps to bad gateway", func(t *testing.T) {
		f := newAPIFixture(t)
		set := f.createSet(t, "Cell Structure")
		f.generator.On("GenerateCards", mock.Anything, mock.Anything, 2).
			Return(nil, fmt.Errorf("%w: garbage output", generation.ErrInvalidResponse)).Once()

		resp := f.do(t, http.MethodPost, "/api/sets/"+set.ID.String()+"/generate", map[string]any{
			"context_text": "lecture notes",
			"num_cards":    2,
		})
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

		// Nothing was committed.
		resp = f.do(t, http.MethodGet, "/api/sets/"+set.ID.String(), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got api.SetResponse
		decode(t, resp, &got)
		assert.Empty(t, got.Cards)
	})
}
