package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nvallens/studydeck-api/internal/domain"
	"github.com/nvallens/studydeck-api/internal/service"
)

// defaultTimeout bounds a single generator call when the caller does
// not configure one.
const defaultTimeout = 30 * time.Second

// Service orchestrates flashcard generation: it validates caller input,
// invokes the Generator with a bounded timeout and at most one retry on
// transient failure, deduplicates the candidates, and commits them to
// the set in a single atomic operation.
//
// The generator call happens entirely outside any store lock; only the
// final AddFlashcards commit takes the write lock.
type Service struct {
	generator Generator
	sets      service.SetService
	logger    *slog.Logger
	timeout   time.Duration
}

// NewService creates a generation Service. A non-positive timeout falls
// back to the default.
func NewService(generator Generator, sets service.SetService, logger *slog.Logger, timeout time.Duration) (*Service, error) {
	if generator == nil {
		return nil, fmt.Errorf("%w: generator cannot be nil", ErrInvalidConfig)
	}
	if sets == nil {
		return nil, fmt.Errorf("%w: set service cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Service{
		generator: generator,
		sets:      sets,
		logger:    logger.With(slog.String("component", "generation_service")),
		timeout:   timeout,
	}, nil
}

// GenerateAndAdd generates up to desiredCount flashcards from the
// context text and appends them to the set. Nothing is committed unless
// generation, validation, and deduplication all succeed, so a failure
// never leaves a partial batch behind.
func (s *Service) GenerateAndAdd(
	ctx context.Context,
	setID uuid.UUID,
	contextText string,
	desiredCount int,
) ([]domain.Flashcard, error) {
	if desiredCount <= 0 {
		return nil, domain.NewValidationError("desired_count", "must be positive", nil)
	}
	if strings.TrimSpace(contextText) == "" {
		return nil, domain.NewValidationError("context_text", "cannot be empty", nil)
	}

	// Fail fast on an unknown set before paying for the LLM call.
	if _, err := s.sets.GetSet(ctx, setID); err != nil {
		return nil, err
	}

	candidates, err := s.generate(ctx, contextText, desiredCount)
	if err != nil {
		return nil, err
	}

	usable, err := s.prepareCandidates(candidates, desiredCount)
	if err != nil {
		return nil, err
	}

	cards, err := s.sets.AddFlashcards(ctx, setID, usable)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "generated flashcards committed",
		slog.String("set_id", setID.String()),
		slog.Int("requested", desiredCount),
		slog.Int("committed", len(cards)))
	return cards, nil
}

// generate invokes the external generator with a per-attempt timeout
// and at most one retry, taken only for transient failures.
func (s *Service) generate(ctx context.Context, contextText string, desiredCount int) ([]domain.CardCandidate, error) {
	const maxAttempts = 2

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		candidates, err := s.generator.GenerateCards(attemptCtx, contextText, desiredCount)
		cancel()

		if err == nil {
			return candidates, nil
		}
		lastErr = err

		if !errors.Is(err, ErrTransientFailure) && !errors.Is(err, context.DeadlineExceeded) {
			break
		}
		if ctx.Err() != nil || attempt == maxAttempts {
			break
		}

		s.logger.WarnContext(ctx, "transient generation failure, retrying once",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
	}

	return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, lastErr)
}

// prepareCandidates rejects malformed candidates, removes duplicate
// questions (case-insensitive exact match), and caps the batch at the
// requested count.
func (s *Service) prepareCandidates(candidates []domain.CardCandidate, desiredCount int) ([]domain.CardCandidate, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, ErrNoUsableCards)
	}

	seen := make(map[string]struct{}, len(candidates))
	usable := make([]domain.CardCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if err := candidate.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w: %v", ErrGenerationFailed, ErrInvalidResponse, err)
		}

		key := strings.ToLower(strings.TrimSpace(candidate.Question))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		usable = append(usable, candidate)
	}

	if len(usable) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, ErrNoUsableCards)
	}
	if len(usable) > desiredCount {
		usable = usable[:desiredCount]
	}
	return usable, nil
}
