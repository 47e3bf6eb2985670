package api_test

import (
	"net/http"
	"testing"

	"github.com/nvallens/studydeck-api/internal/api"
	"github.com/nvallens/studydeck-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetHandler_CreateSet(t *testing.T) {
	t.Run("creates a set", func(t *testing.T) {
		f := newAPIFixture(t)

		resp := f.do(t, http.MethodPost, "/api/sets", map[string]any{
			"course_id":   12345,
			"course_name": "Biology 101",
			"title":       "Cell Structure",
			"notes":       "chapters 3-4",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var set api.SetResponse
		decode(t, resp, &set)
		assert.NotEmpty(t, set.ID)
		assert.Equal(t, int64(12345), set.CourseID)
		assert.Equal(t, "Biology 101", set.CourseName)
		assert.Equal(t, "Cell Structure", set.Title)
		assert.Equal(t, "chapters 3-4", set.Notes)
		assert.Empty(t, set.Cards)
	})

	t.Run("missing title", func(t *testing.T) {
		f := newAPIFixture(t)
		resp := f.do(t, http.MethodPost, "/api/sets", map[string]any{"course_id": 12345})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newAPIFixture(t)
		resp := f.do(t, http.MethodPost, "/api/sets", "not an object")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSetHandler_GetSet(t *testing.T) {
	t.Run("returns the set with its cards", func(t *testing.T) {
		f := newAPIFixture(t)
		set := f.createSet(t, "Cell Structure")
		f.addCards(t, set.ID,
			domain.CardCandidate{Question: "Q1", Answer: "A1"},
			domain.CardCandidate{Question: "Q2", Answer: "A2"},
		)

		resp := f.do(t, http.MethodGet, "/api/sets/"+set.ID.String(), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got api.SetResponse
		decode(t, resp, &got)
		assert.Equal(t, set.ID.String(), got.ID)
		require.Len(t, got.Cards, 2)
		assert.Equal(t, "Q1", got.Cards[0].Question)
	})

	t.Run("unknown set", func(t *testing.T) {
		f := newAPIFixture(t)
		resp := f.do(t, http.MethodGet, "/api/sets/6ba7b810-9dad-11d1-80b4-00c04fd430c8", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed set ID", func(t *testing.T) {
		f := newAPIFixture(t)
		resp := f.do(t, http.MethodGet, "/api/sets/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSetHandler_ListSets(t *testing.T) {
	f := newAPIFixture(t)
	f.createSet(t, "First")
	f.createSet(t, "Second")

	resp := f.do(t, http.MethodGet, "/api/sets", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sets []api.SetResponse
	decode(t, resp, &sets)
	require.Len(t, sets, 2)
	assert.Equal(t, "First", sets[0].Title)
	assert.Equal(t, "Second", sets[1].Title)
}

func TestSetHandler_ListSetsByCourse(t *testing.T) {
	t.Run("filters by course", func(t *testing.T) {
		f := newAPIFixture(t)
		f.createSet(t, "In Course")

		resp := f.do(t, http.MethodGet, "/api/courses/12345/sets", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var sets []api.SetResponse
		decode(t, resp, &sets)
		assert.Len(t, sets, 1)

		resp = f.do(t, http.MethodGet, "/api/courses/99999/sets", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decode(t, resp, &sets)
		assert.Empty(t, sets)
	})

	t.Run("non-numeric course ID", func(t *testing.T) {
		f := newAPIFixture(t)
		resp := f.do(t, http.MethodGet, "/api/courses/abc/sets", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSetHandler_AddFlashcards(t *testing.T) {
	t.Run("appends cards", func(t *testing.T) {
		f := newAPIFixture(t)
		set := f.createSet(t, "Cell Structure")

		resp := f.do(t, http.MethodPost, "/api/sets/"+set.ID.String()+"/cards", map[string]any{
			"flashcards": []map[string]any{
				{"question": "Q1", "answer": "A1", "tags": []string{"membrane"}},
				{"question": "Q2", "answer": "A2"},
			},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var cards []api.FlashcardResponse
		decode(t, resp, &cards)
		require.Len(t, cards, 2)
		assert.Equal(t, "Q1", cards[0].Question)
		assert.Equal(t, []string{"membrane"}, cards[0].Tags)
	})

	t.Run("empty batch", func(t *testing.T) {
		f := newAPIFixture(t)
		set := f.createSet(t, "Cell Structure")

		resp := f.do(t, http.MethodPost, "/api/sets/"+set.ID.String()+"/cards", map[string]any{
			"flashcards": []map[string]any{},
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("candidate missing an answer", func(t *testing.T) {
		f := newAPIFixture(t)
		set := f.createSet(t, "Cell Structure")

		resp := f.do(t, http.MethodPost, "/api/sets/"+set.ID.String()+"/cards", map[string]any{
			"flashcards": []map[string]any{{"question": "Q1"}},
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown set", func(t *testing.T) {
		f := newAPIFixture(t)
		resp := f.do(t, http.MethodPost, "/api/sets/6ba7b810-9dad-11d1-80b4-00c04fd430c8/cards", map[string]any{
			"flashcards": []map[string]any{{"question": "Q1", "answer": "A1"}},
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestSetHandler_DeleteSet(t *testing.T) {
	t.Run("deletes and returns no content", func(t *testing.T) {
		f := newAPIFixture(t)
		set := f.createSet(t, "Doomed")

		resp := f.do(t, http.MethodDelete, "/api/sets/"+set.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = f.do(t, http.MethodGet, "/api/sets/"+set.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("deleting twice", func(t *testing.T) {
		f := newAPIFixture(t)
		set := f.createSet(t, "Doomed")

		resp := f.do(t, http.MethodDelete, "/api/sets/"+set.ID.String(), nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp = f.do(t, http.MethodDelete, "/api/sets/"+set.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
