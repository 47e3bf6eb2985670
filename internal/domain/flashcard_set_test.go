package domain_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/nvallens/studydeck-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlashcardSet(t *testing.T) {
	t.Run("valid set", func(t *testing.T) {
		set, err := domain.NewFlashcardSet(12345, "Intro to Python")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, set.ID)
		assert.Equal(t, int64(12345), set.CourseID)
		assert.Equal(t, "Intro to Python", set.Title)
		assert.Empty(t, set.Cards)
		assert.False(t, set.CreatedAt.IsZero())
	})

	t.Run("empty title fails validation", func(t *testing.T) {
		_, err := domain.NewFlashcardSet(12345, "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))
		assert.True(t, errors.Is(err, domain.ErrEmptyTitle))
	})

	t.Run("whitespace title fails validation", func(t *testing.T) {
		_, err := domain.NewFlashcardSet(12345, "   ")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrEmptyTitle))
	})
}

func TestFlashcardSet_Card(t *testing.T) {
	set, err := domain.NewFlashcardSet(1, "Biology")
	require.NoError(t, err)

	cardID := uuid.New()
	set.Cards = append(set.Cards, domain.Flashcard{ID: cardID, Question: "Q", Answer: "A"})

	found, ok := set.Card(cardID)
	assert.True(t, ok)
	assert.Equal(t, "Q", found.Question)

	_, ok = set.Card(uuid.New())
	assert.False(t, ok)
}

func TestValidateCandidates(t *testing.T) {
	tests := []struct {
		name       string
		candidates []domain.CardCandidate
		wantErr    error
	}{
		{
			name:       "empty batch",
			candidates: nil,
			wantErr:    domain.ErrNoCandidates,
		},
		{
			name: "missing question",
			candidates: []domain.CardCandidate{
				{Question: "", Answer: "A"},
			},
			wantErr: domain.ErrEmptyQuestion,
		},
		{
			name: "missing answer",
			candidates: []domain.CardCandidate{
				{Question: "Q", Answer: "  "},
			},
			wantErr: domain.ErrEmptyAnswer,
		},
		{
			name: "one bad candidate fails the whole batch",
			candidates: []domain.CardCandidate{
				{Question: "Q1", Answer: "A1"},
				{Question: "", Answer: "A2"},
			},
			wantErr: domain.ErrEmptyQuestion,
		},
		{
			name: "valid batch",
			candidates: []domain.CardCandidate{
				{Question: "Q1", Answer: "A1"},
				{Question: "Q2", Answer: "A2", Tags: []string{"ch1"}},
			},
			wantErr: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := domain.ValidateCandidates(tc.candidates)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr))
			assert.True(t, errors.Is(err, domain.ErrValidation))
		})
	}
}
