package generation

import (
	"context"

	"github.com/nvallens/studydeck-api/internal/domain"
)

// Generator defines the interface for producing flashcard candidates
// from course text. It is the boundary between the application core and
// the external AI/LLM service: implementations own transport, prompting,
// and response parsing, and report failures through this package's
// sentinel errors (ErrTransientFailure for conditions worth retrying).
type Generator interface {
	// GenerateCards creates up to desiredCount question/answer
	// candidates from the given context text. The returned candidates
	// carry no identity; committing them to a set is the caller's job.
	GenerateCards(ctx context.Context, contextText string, desiredCount int) ([]domain.CardCandidate, error)
}
