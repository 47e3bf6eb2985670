package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FlashcardSet is a named collection of flashcards tied to a course and,
// optionally, a specific assignment. Cards are kept in insertion order
// and are only ever appended; there is no reordering.
type FlashcardSet struct {
	ID           uuid.UUID   `json:"id"`
	CourseID     int64       `json:"course_id"`
	CourseName   string      `json:"course_name,omitempty"`
	AssignmentID *int64      `json:"assignment_id,omitempty"`
	Title        string      `json:"title"`
	Notes        string      `json:"notes,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Cards        []Flashcard `json:"cards"`
}

// Flashcard is a single question/answer pair within a set. The ID is
// unique across the whole store, not just within the owning set.
type Flashcard struct {
	ID        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CardCandidate is an unsaved question/answer pair, either supplied
// directly by a caller or produced by the generation collaborator.
// Candidates carry no identity; IDs are assigned when the candidate is
// committed to a set.
type CardCandidate struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Tags     []string `json:"tags,omitempty"`
}

// NewFlashcardSet creates an empty FlashcardSet with a fresh UUID and
// UTC timestamps. Returns an error if validation fails.
func NewFlashcardSet(courseID int64, title string) (*FlashcardSet, error) {
	now := time.Now().UTC()
	set := &FlashcardSet{
		ID:        uuid.New(),
		CourseID:  courseID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Cards:     []Flashcard{},
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

// Validate checks if the FlashcardSet has valid data.
func (s *FlashcardSet) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	return nil
}

// Card returns the flashcard with the given ID, or false if the set
// does not contain it.
func (s *FlashcardSet) Card(id uuid.UUID) (Flashcard, bool) {
	for _, card := range s.Cards {
		if card.ID == id {
			return card, true
		}
	}
	return Flashcard{}, false
}

// Validate checks that the candidate has both a question and an answer.
func (c CardCandidate) Validate() error {
	if strings.TrimSpace(c.Question) == "" {
		return NewValidationError("question", "cannot be empty", ErrEmptyQuestion)
	}
	if strings.TrimSpace(c.Answer) == "" {
		return NewValidationError("answer", "cannot be empty", ErrEmptyAnswer)
	}
	return nil
}

// ValidateCandidates checks a batch of candidates for AddFlashcards.
// An empty batch is itself a validation failure.
func ValidateCandidates(candidates []CardCandidate) error {
	if len(candidates) == 0 {
		return NewValidationError("candidates", "cannot be empty", ErrNoCandidates)
	}
	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}
