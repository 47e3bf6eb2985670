package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/nvallens/studydeck-api/internal/domain"
	"github.com/nvallens/studydeck-api/internal/store"
)

// ReviewService records review outcomes and answers queries about
// mastery state. Review recording is the only mutation; the queue and
// progress queries are pure reads over store snapshots.
type ReviewService interface {
	// RecordReview applies a single review outcome to a card and
	// returns the updated progress record.
	RecordReview(ctx context.Context, setID, cardID uuid.UUID, correct bool) (domain.ReviewProgress, error)

	// GetNeedingReview returns the set's non-mastered cards, most
	// overdue first: never-reviewed cards in insertion order, then
	// reviewed cards ordered by oldest last review. A limit of 0 means
	// no limit.
	GetNeedingReview(ctx context.Context, setID uuid.UUID, limit int) ([]domain.Flashcard, error)

	// GetProgress returns the aggregate progress report for a set.
	GetProgress(ctx context.Context, setID uuid.UUID) (*domain.SetProgress, error)
}

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	store  *store.Store
	logger *slog.Logger
	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewReviewService creates a ReviewService backed by the given store.
func NewReviewService(s *store.Store, logger *slog.Logger) ReviewService {
	if logger == nil {
		logger = slog.Default()
	}
	return &reviewServiceImpl{
		store:  s,
		logger: logger.With(slog.String("component", "review_service")),
		now:    time.Now,
	}
}

// RecordReview applies one review outcome inside a single store
// transaction: counters increment, mastery is recomputed, and the
// last-reviewed timestamp advances, all-or-nothing.
func (s *reviewServiceImpl) RecordReview(
	ctx context.Context,
	setID, cardID uuid.UUID,
	correct bool,
) (domain.ReviewProgress, error) {
	var updated domain.ReviewProgress
	err := s.store.Mutate(func(docs *store.Documents) error {
		set, ok := docs.Sets[setID]
		if !ok {
			return store.ErrSetNotFound
		}
		if _, ok := set.Card(cardID); !ok {
			return store.ErrCardNotFound
		}

		records := docs.Progress[setID]
		if records == nil {
			records = make(map[uuid.UUID]domain.ReviewProgress)
			docs.Progress[setID] = records
		}

		record := records[cardID]
		record.Apply(correct, s.now())
		records[cardID] = record
		updated = record
		return nil
	})
	if err != nil {
		return domain.ReviewProgress{}, NewServiceError("record_review", "failed to record review", err)
	}

	s.logger.DebugContext(ctx, "review recorded",
		slog.String("set_id", setID.String()),
		slog.String("card_id", cardID.String()),
		slog.Bool("correct", correct),
		slog.Bool("mastered", updated.Mastered))
	return updated, nil
}

// GetNeedingReview returns the non-mastered cards of a set in review
// priority order.
func (s *reviewServiceImpl) GetNeedingReview(
	ctx context.Context,
	setID uuid.UUID,
	limit int,
) ([]domain.Flashcard, error) {
	docs, err := s.store.Snapshot()
	if err != nil {
		return nil, NewServiceError("get_needing_review", "failed to read store", err)
	}

	set, ok := docs.Sets[setID]
	if !ok {
		return nil, store.ErrSetNotFound
	}
	records := docs.Progress[setID]

	// Partition: never-reviewed cards keep insertion order and go
	// first; reviewed-but-unmastered cards follow, oldest review first.
	var neverReviewed []domain.Flashcard
	type reviewedCard struct {
		card         domain.Flashcard
		lastReviewed time.Time
	}
	var reviewed []reviewedCard

	for _, card := range set.Cards {
		record := records[card.ID]
		if record.Mastered {
			continue
		}
		if record.LastReviewed == nil {
			neverReviewed = append(neverReviewed, card)
			continue
		}
		reviewed = append(reviewed, reviewedCard{card: card, lastReviewed: *record.LastReviewed})
	}

	sort.SliceStable(reviewed, func(i, j int) bool {
		return reviewed[i].lastReviewed.Before(reviewed[j].lastReviewed)
	})

	queue := make([]domain.Flashcard, 0, len(neverReviewed)+len(reviewed))
	queue = append(queue, neverReviewed...)
	for _, rc := range reviewed {
		queue = append(queue, rc.card)
	}

	if limit > 0 && len(queue) > limit {
		queue = queue[:limit]
	}
	return queue, nil
}

// GetProgress builds the aggregate progress report for a set. The
// set-level totals are derived from the per-card records.
func (s *reviewServiceImpl) GetProgress(ctx context.Context, setID uuid.UUID) (*domain.SetProgress, error) {
	docs, err := s.store.Snapshot()
	if err != nil {
		return nil, NewServiceError("get_progress", "failed to read store", err)
	}

	set, ok := docs.Sets[setID]
	if !ok {
		return nil, store.ErrSetNotFound
	}
	records := docs.Progress[setID]

	progress := &domain.SetProgress{
		SetID:      setID,
		TotalCards: len(set.Cards),
		Cards:      make([]domain.CardProgress, 0, len(set.Cards)),
	}

	for _, card := range set.Cards {
		record := records[card.ID]
		if record.Mastered {
			progress.MasteredCount++
		}
		progress.TotalReviews += record.TimesReviewed
		if record.LastReviewed != nil {
			if progress.LastReviewed == nil || record.LastReviewed.After(*progress.LastReviewed) {
				progress.LastReviewed = record.LastReviewed
			}
		}
		progress.Cards = append(progress.Cards, domain.CardProgress{
			FlashcardID: card.ID,
			Progress:    record,
		})
	}

	return progress, nil
}
