package domain

import (
	"time"

	"github.com/google/uuid"
)

// masteredThreshold is the number of lifetime correct answers required
// before a card with no incorrect answers counts as mastered.
const masteredThreshold = 3

// ReviewProgress tracks the lifetime review counters and mastery flag
// for a single flashcard, independent of the card's content. Exactly
// one record exists per card, created zero-valued alongside the card.
type ReviewProgress struct {
	TimesReviewed  int        `json:"times_reviewed"`
	TimesCorrect   int        `json:"times_correct"`
	TimesIncorrect int        `json:"times_incorrect"`
	Mastered       bool       `json:"mastered"`
	LastReviewed   *time.Time `json:"last_reviewed,omitempty"`
}

// NewReviewProgress returns a zero-valued progress record for a card
// that has never been reviewed.
func NewReviewProgress() ReviewProgress {
	return ReviewProgress{}
}

// Apply records a single review outcome at the given time. Counters are
// incremented and Mastered is recomputed from the lifetime counters, so
// a single incorrect answer revokes mastery regardless of any prior
// correct streak.
func (p *ReviewProgress) Apply(correct bool, now time.Time) {
	p.TimesReviewed++
	if correct {
		p.TimesCorrect++
	} else {
		p.TimesIncorrect++
	}
	p.Mastered = p.TimesCorrect >= masteredThreshold && p.TimesIncorrect == 0
	t := now.UTC()
	p.LastReviewed = &t
}

// ConsistencyOK reports whether the counters satisfy the record's
// arithmetic invariant. A false result indicates a corrupt document.
func (p ReviewProgress) ConsistencyOK() bool {
	return p.TimesReviewed == p.TimesCorrect+p.TimesIncorrect
}

// CardProgress pairs a flashcard ID with its progress record, used in
// aggregate progress reports.
type CardProgress struct {
	FlashcardID uuid.UUID      `json:"flashcard_id"`
	Progress    ReviewProgress `json:"progress"`
}

// SetProgress is the aggregate progress report for one flashcard set.
// TotalReviews and LastReviewed are derived from the per-card records
// rather than stored, so they can never drift out of sync.
type SetProgress struct {
	SetID         uuid.UUID      `json:"set_id"`
	TotalCards    int            `json:"total_cards"`
	MasteredCount int            `json:"mastered_count"`
	TotalReviews  int            `json:"total_reviews"`
	LastReviewed  *time.Time     `json:"last_reviewed,omitempty"`
	Cards         []CardProgress `json:"cards"`
}
