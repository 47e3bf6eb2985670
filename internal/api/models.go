package api

import (
	"time"

	"github.com/nvallens/studydeck-api/internal/domain"
)

// Common request/response structures

// CreateSetRequest defines the payload for creating a flashcard set.
type CreateSetRequest struct {
	CourseID     int64  `json:"course_id"               validate:"required"`
	CourseName   string `json:"course_name,omitempty"`
	Title        string `json:"title"                   validate:"required"`
	AssignmentID *int64 `json:"assignment_id,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// CandidateRequest is one unsaved question/answer pair in an
// add-flashcards payload.
type CandidateRequest struct {
	Question string   `json:"question"       validate:"required"`
	Answer   string   `json:"answer"         validate:"required"`
	Tags     []string `json:"tags,omitempty"`
}

// AddFlashcardsRequest defines the payload for appending cards to a set.
type AddFlashcardsRequest struct {
	Flashcards []CandidateRequest `json:"flashcards" validate:"required,min=1,dive"`
}

// RecordReviewRequest defines the payload for recording a review
// outcome. Correct is a pointer so a missing field fails validation
// instead of silently reading as false.
type RecordReviewRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}

// GenerateRequest defines the payload for LLM-backed card generation.
type GenerateRequest struct {
	ContextText string `json:"context_text" validate:"required"`
	NumCards    int    `json:"num_cards"    validate:"required,gt=0"`
}

// FlashcardResponse represents a single flashcard.
type FlashcardResponse struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SetResponse represents a flashcard set including its cards.
type SetResponse struct {
	ID           string              `json:"id"`
	CourseID     int64               `json:"course_id"`
	CourseName   string              `json:"course_name,omitempty"`
	AssignmentID *int64              `json:"assignment_id,omitempty"`
	Title        string              `json:"title"`
	Notes        string              `json:"notes,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Cards        []FlashcardResponse `json:"cards"`
}

// ReviewProgressResponse represents the review counters for one card.
type ReviewProgressResponse struct {
	FlashcardID    string     `json:"flashcard_id,omitempty"`
	TimesReviewed  int        `json:"times_reviewed"`
	TimesCorrect   int        `json:"times_correct"`
	TimesIncorrect int        `json:"times_incorrect"`
	Mastered       bool       `json:"mastered"`
	LastReviewed   *time.Time `json:"last_reviewed,omitempty"`
}

// SetProgressResponse represents the aggregate progress for a set.
type SetProgressResponse struct {
	SetID         string                   `json:"set_id"`
	TotalCards    int                      `json:"total_cards"`
	MasteredCount int                      `json:"mastered_count"`
	TotalReviews  int                      `json:"total_reviews"`
	LastReviewed  *time.Time               `json:"last_reviewed,omitempty"`
	Cards         []ReviewProgressResponse `json:"cards"`
}

// cardToResponse converts a domain flashcard to its response form.
func cardToResponse(card domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:        card.ID.String(),
		Question:  card.Question,
		Answer:    card.Answer,
		Tags:      card.Tags,
		CreatedAt: card.CreatedAt,
	}
}

// cardsToResponse converts a slice of domain flashcards.
func cardsToResponse(cards []domain.Flashcard) []FlashcardResponse {
	out := make([]FlashcardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, cardToResponse(card))
	}
	return out
}

// setToResponse converts a domain flashcard set to its response form.
func setToResponse(set *domain.FlashcardSet) SetResponse {
	return SetResponse{
		ID:           set.ID.String(),
		CourseID:     set.CourseID,
		CourseName:   set.CourseName,
		AssignmentID: set.AssignmentID,
		Title:        set.Title,
		Notes:        set.Notes,
		CreatedAt:    set.CreatedAt,
		UpdatedAt:    set.UpdatedAt,
		Cards:        cardsToResponse(set.Cards),
	}
}

// progressToResponse converts an aggregate progress report.
func progressToResponse(progress *domain.SetProgress) SetProgressResponse {
	cards := make([]ReviewProgressResponse, 0, len(progress.Cards))
	for _, cp := range progress.Cards {
		cards = append(cards, ReviewProgressResponse{
			FlashcardID:    cp.FlashcardID.String(),
			TimesReviewed:  cp.Progress.TimesReviewed,
			TimesCorrect:   cp.Progress.TimesCorrect,
			TimesIncorrect: cp.Progress.TimesIncorrect,
			Mastered:       cp.Progress.Mastered,
			LastReviewed:   cp.Progress.LastReviewed,
		})
	}
	return SetProgressResponse{
		SetID:         progress.SetID.String(),
		TotalCards:    progress.TotalCards,
		MasteredCount: progress.MasteredCount,
		TotalReviews:  progress.TotalReviews,
		LastReviewed:  progress.LastReviewed,
		Cards:         cards,
	}
}
