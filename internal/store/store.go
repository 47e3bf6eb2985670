package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/nvallens/studydeck-api/internal/domain"
)

// Default file names for the two persisted documents.
const (
	flashcardsFile = "flashcards.json"
	progressFile   = "progress.json"
)

// Documents holds the two in-memory documents the store owns: the
// flashcard sets keyed by set ID, and the review progress keyed by
// set ID and then flashcard ID. Mutation functions passed to
// Store.Mutate receive a private copy of this structure and may modify
// it freely; the copy only becomes visible once it is durable.
type Documents struct {
	Sets     map[uuid.UUID]*domain.FlashcardSet
	Progress map[uuid.UUID]map[uuid.UUID]domain.ReviewProgress
}

// newDocuments returns an empty, initialized Documents value.
func newDocuments() Documents {
	return Documents{
		Sets:     make(map[uuid.UUID]*domain.FlashcardSet),
		Progress: make(map[uuid.UUID]map[uuid.UUID]domain.ReviewProgress),
	}
}

// clone returns a deep copy of the documents. Sets are copied card by
// card so callers can mutate the copy without aliasing the original.
func (d Documents) clone() Documents {
	out := newDocuments()
	for id, set := range d.Sets {
		setCopy := *set
		setCopy.Cards = make([]domain.Flashcard, len(set.Cards))
		copy(setCopy.Cards, set.Cards)
		for i, card := range setCopy.Cards {
			if card.Tags != nil {
				tags := make([]string, len(card.Tags))
				copy(tags, card.Tags)
				setCopy.Cards[i].Tags = tags
			}
		}
		if set.AssignmentID != nil {
			aid := *set.AssignmentID
			setCopy.AssignmentID = &aid
		}
		out.Sets[id] = &setCopy
	}
	for setID, records := range d.Progress {
		recordsCopy := make(map[uuid.UUID]domain.ReviewProgress, len(records))
		for cardID, rec := range records {
			if rec.LastReviewed != nil {
				t := *rec.LastReviewed
				rec.LastReviewed = &t
			}
			recordsCopy[cardID] = rec
		}
		out.Progress[setID] = recordsCopy
	}
	return out
}

// Store is the durable key-value persistence layer for flashcard sets
// and review progress. A single instance is constructed at process
// start and shared by every component that reads or writes state.
type Store struct {
	mu     sync.RWMutex
	dir    string
	docs   Documents
	loaded bool
	closed bool
	logger *slog.Logger
}

// New creates a Store rooted at the given data directory, creating the
// directory if needed. Load must be called before any other method.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if dir == "" {
		return nil, errors.New("data directory cannot be empty")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, NewPersistenceError("storage", "init", err)
	}

	return &Store{
		dir:    dir,
		docs:   newDocuments(),
		logger: logger.With(slog.String("component", "store")),
	}, nil
}

// Load reads both documents from disk into memory. Absent files are
// treated as empty documents; unparseable files fail with a
// PersistenceError wrapping ErrCorruptDocument so data is never
// silently discarded. Load also re-opens a store that failed closed
// after a write error.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := newDocuments()

	sets := make(map[uuid.UUID]*domain.FlashcardSet)
	if err := s.loadDocument(flashcardsFile, &sets); err != nil {
		return err
	}
	docs.Sets = sets

	progress := make(map[uuid.UUID]map[uuid.UUID]domain.ReviewProgress)
	if err := s.loadDocument(progressFile, &progress); err != nil {
		return err
	}
	docs.Progress = progress

	s.docs = docs
	s.loaded = true
	s.closed = false

	s.logger.Info("store loaded",
		slog.String("dir", s.dir),
		slog.Int("sets", len(docs.Sets)))
	return nil
}

// loadDocument reads and unmarshals one document file. Missing files
// leave the target untouched (empty document).
func (s *Store) loadDocument(name string, target interface{}) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return NewPersistenceError(name, "load", err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return NewPersistenceError(name, "load",
			fmt.Errorf("%w: %v", ErrCorruptDocument, err))
	}
	return nil
}

// Mutate is the sole write path. It serializes against all other
// writers, applies fn to a deep copy of the current documents, and
// persists the result durably before making it visible. If fn returns
// an error, nothing changes. If the durable write fails, nothing
// changes either and the store closes itself to further writes
// (callers see ErrStoreClosed until Load succeeds again).
func (s *Store) Mutate(fn func(docs *Documents) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewPersistenceError("storage", "mutate", ErrStoreClosed)
	}
	if !s.loaded {
		return NewPersistenceError("storage", "mutate", ErrNotLoaded)
	}

	next := s.docs.clone()
	if err := fn(&next); err != nil {
		return err
	}

	if err := s.persist(next); err != nil {
		s.closed = true
		s.logger.Error("durable write failed, store closed to writes",
			slog.String("error", err.Error()))
		return err
	}

	s.docs = next
	return nil
}

// Snapshot returns a consistent, deep-copied view of both documents.
// Any number of snapshots may be taken concurrently; each is serialized
// with respect to Mutate, so a snapshot never observes a half-applied
// mutation.
func (s *Store) Snapshot() (Documents, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return Documents{}, NewPersistenceError("storage", "snapshot", ErrNotLoaded)
	}
	return s.docs.clone(), nil
}

// persist writes both documents durably. Both files are fully staged
// to temp files before either live file is touched, so a staging
// failure leaves the on-disk pair unchanged. The renames then commit
// the pair: the previous sets document is parked under a .prev name
// until the progress rename succeeds, and restored if it does not, so
// a rename failure cannot leave a new sets document next to stale
// progress.
func (s *Store) persist(docs Documents) error {
	setsData, err := json.MarshalIndent(docs.Sets, "", "  ")
	if err != nil {
		return NewPersistenceError(flashcardsFile, "save", err)
	}
	progressData, err := json.MarshalIndent(docs.Progress, "", "  ")
	if err != nil {
		return NewPersistenceError(progressFile, "save", err)
	}

	setsTmp, err := s.stageDocument(flashcardsFile, setsData)
	if err != nil {
		return err
	}
	progressTmp, err := s.stageDocument(progressFile, progressData)
	if err != nil {
		_ = os.Remove(setsTmp)
		return err
	}

	setsPath := filepath.Join(s.dir, flashcardsFile)
	progressPath := filepath.Join(s.dir, progressFile)
	backupPath := setsPath + ".prev"

	hasBackup := true
	if err := os.Rename(setsPath, backupPath); err != nil {
		if !os.IsNotExist(err) {
			_ = os.Remove(setsTmp)
			_ = os.Remove(progressTmp)
			return NewPersistenceError(flashcardsFile, "save",
				fmt.Errorf("%w: %v", ErrWriteFailed, err))
		}
		// First save into an empty directory.
		hasBackup = false
	}

	if err := os.Rename(setsTmp, setsPath); err != nil {
		if hasBackup {
			_ = os.Rename(backupPath, setsPath)
		}
		_ = os.Remove(setsTmp)
		_ = os.Remove(progressTmp)
		return NewPersistenceError(flashcardsFile, "save",
			fmt.Errorf("%w: %v", ErrWriteFailed, err))
	}

	if err := os.Rename(progressTmp, progressPath); err != nil {
		// Put the previous sets document back so the two documents
		// remain a consistent pair.
		if hasBackup {
			_ = os.Rename(backupPath, setsPath)
		} else {
			_ = os.Remove(setsPath)
		}
		_ = os.Remove(progressTmp)
		return NewPersistenceError(progressFile, "save",
			fmt.Errorf("%w: %v", ErrWriteFailed, err))
	}

	if hasBackup {
		_ = os.Remove(backupPath)
	}
	return nil
}

// stageDocument writes data to a synced temp file in the store
// directory and returns its path. The live document is not touched.
func (s *Store) stageDocument(name string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return "", NewPersistenceError(name, "save",
			fmt.Errorf("%w: %v", ErrWriteFailed, err))
	}
	tmpName := tmp.Name()

	// Any failure from here on removes the temp file.
	cleanup := func(cause error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", NewPersistenceError(name, "save",
			fmt.Errorf("%w: %v", ErrWriteFailed, cause))
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", NewPersistenceError(name, "save",
			fmt.Errorf("%w: %v", ErrWriteFailed, err))
	}
	return tmpName, nil
}
