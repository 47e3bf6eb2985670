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

// CreateSetParams carries the caller-supplied attributes for a new
// flashcard set. CourseName, AssignmentID, and Notes are optional.
type CreateSetParams struct {
	CourseID     int64
	CourseName   string
	Title        string
	AssignmentID *int64
	Notes        string
}

// SetService provides lifecycle operations on flashcard sets and their
// cards. All mutations run as single store transactions.
type SetService interface {
	// CreateSet stores a new, empty flashcard set.
	CreateSet(ctx context.Context, params CreateSetParams) (*domain.FlashcardSet, error)

	// AddFlashcards appends the candidates to the set in the order
	// supplied, assigning fresh IDs and zero-valued progress records.
	// Either every card and every progress record is added, or none are.
	AddFlashcards(ctx context.Context, setID uuid.UUID, candidates []domain.CardCandidate) ([]domain.Flashcard, error)

	// GetSet retrieves a set by its ID.
	GetSet(ctx context.Context, setID uuid.UUID) (*domain.FlashcardSet, error)

	// GetSetsByCourse retrieves all sets belonging to a course.
	GetSetsByCourse(ctx context.Context, courseID int64) ([]*domain.FlashcardSet, error)

	// GetAllSets retrieves every stored set.
	GetAllSets(ctx context.Context) ([]*domain.FlashcardSet, error)

	// DeleteSet removes a set and all of its progress records atomically.
	DeleteSet(ctx context.Context, setID uuid.UUID) error
}

// setServiceImpl implements the SetService interface on top of the
// shared document store.
type setServiceImpl struct {
	store  *store.Store
	logger *slog.Logger
}

// NewSetService creates a SetService backed by the given store.
func NewSetService(s *store.Store, logger *slog.Logger) SetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &setServiceImpl{
		store:  s,
		logger: logger.With(slog.String("component", "set_service")),
	}
}

// CreateSet stores a new, empty flashcard set.
func (s *setServiceImpl) CreateSet(ctx context.Context, params CreateSetParams) (*domain.FlashcardSet, error) {
	set, err := domain.NewFlashcardSet(params.CourseID, params.Title)
	if err != nil {
		return nil, err
	}
	set.CourseName = params.CourseName
	set.Notes = params.Notes
	if params.AssignmentID != nil {
		aid := *params.AssignmentID
		set.AssignmentID = &aid
	}

	err = s.store.Mutate(func(docs *store.Documents) error {
		docs.Sets[set.ID] = set
		docs.Progress[set.ID] = make(map[uuid.UUID]domain.ReviewProgress)
		return nil
	})
	if err != nil {
		return nil, NewServiceError("create_set", "failed to store new set", err)
	}

	s.logger.InfoContext(ctx, "flashcard set created",
		slog.String("set_id", set.ID.String()),
		slog.Int64("course_id", set.CourseID))
	return set, nil
}

// AddFlashcards appends validated candidates to an existing set.
func (s *setServiceImpl) AddFlashcards(
	ctx context.Context,
	setID uuid.UUID,
	candidates []domain.CardCandidate,
) ([]domain.Flashcard, error) {
	if err := domain.ValidateCandidates(candidates); err != nil {
		return nil, err
	}

	var created []domain.Flashcard
	err := s.store.Mutate(func(docs *store.Documents) error {
		set, ok := docs.Sets[setID]
		if !ok {
			return store.ErrSetNotFound
		}

		records := docs.Progress[setID]
		if records == nil {
			records = make(map[uuid.UUID]domain.ReviewProgress)
			docs.Progress[setID] = records
		}

		now := time.Now().UTC()
		created = make([]domain.Flashcard, 0, len(candidates))
		for _, candidate := range candidates {
			card := domain.Flashcard{
				ID:        uuid.New(),
				Question:  candidate.Question,
				Answer:    candidate.Answer,
				Tags:      candidate.Tags,
				CreatedAt: now,
			}
			set.Cards = append(set.Cards, card)
			records[card.ID] = domain.NewReviewProgress()
			created = append(created, card)
		}
		set.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, NewServiceError("add_flashcards", "failed to add cards to set", err)
	}

	s.logger.InfoContext(ctx, "flashcards added",
		slog.String("set_id", setID.String()),
		slog.Int("count", len(created)))
	return created, nil
}

// GetSet retrieves a set by its ID from a point-in-time snapshot.
func (s *setServiceImpl) GetSet(ctx context.Context, setID uuid.UUID) (*domain.FlashcardSet, error) {
	docs, err := s.store.Snapshot()
	if err != nil {
		return nil, NewServiceError("get_set", "failed to read store", err)
	}

	set, ok := docs.Sets[setID]
	if !ok {
		return nil, store.ErrSetNotFound
	}
	return set, nil
}

// GetSetsByCourse retrieves all sets for a course, oldest first.
func (s *setServiceImpl) GetSetsByCourse(ctx context.Context, courseID int64) ([]*domain.FlashcardSet, error) {
	docs, err := s.store.Snapshot()
	if err != nil {
		return nil, NewServiceError("get_sets_by_course", "failed to read store", err)
	}

	sets := make([]*domain.FlashcardSet, 0)
	for _, set := range docs.Sets {
		if set.CourseID == courseID {
			sets = append(sets, set)
		}
	}
	sortSetsByCreation(sets)
	return sets, nil
}

// GetAllSets retrieves every stored set, oldest first.
func (s *setServiceImpl) GetAllSets(ctx context.Context) ([]*domain.FlashcardSet, error) {
	docs, err := s.store.Snapshot()
	if err != nil {
		return nil, NewServiceError("get_all_sets", "failed to read store", err)
	}

	sets := make([]*domain.FlashcardSet, 0, len(docs.Sets))
	for _, set := range docs.Sets {
		sets = append(sets, set)
	}
	sortSetsByCreation(sets)
	return sets, nil
}

// DeleteSet removes a set and its progress records in one transaction.
func (s *setServiceImpl) DeleteSet(ctx context.Context, setID uuid.UUID) error {
	err := s.store.Mutate(func(docs *store.Documents) error {
		if _, ok := docs.Sets[setID]; !ok {
			return store.ErrSetNotFound
		}
		delete(docs.Sets, setID)
		delete(docs.Progress, setID)
		return nil
	})
	if err != nil {
		return NewServiceError("delete_set", "failed to delete set", err)
	}

	s.logger.InfoContext(ctx, "flashcard set deleted",
		slog.String("set_id", setID.String()))
	return nil
}

// sortSetsByCreation orders sets oldest first, breaking timestamp ties
// by ID so list output is deterministic.
func sortSetsByCreation(sets []*domain.FlashcardSet) {
	sort.Slice(sets, func(i, j int) bool {
		if sets[i].CreatedAt.Equal(sets[j].CreatedAt) {
			return sets[i].ID.String() < sets[j].ID.String()
		}
		return sets[i].CreatedAt.Before(sets[j].CreatedAt)
	})
}
