package store

import (
	"errors"
	"fmt"
)

// Common store errors used across the application.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. This is a generic version of the entity-specific not
	// found errors (e.g., ErrSetNotFound, ErrCardNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrCorruptDocument is returned by Load when a persisted document
	// exists but cannot be parsed. The store refuses to silently reset
	// corrupt data; the operator has to intervene.
	ErrCorruptDocument = errors.New("persisted document is corrupt")

	// ErrWriteFailed is returned when a durable write could not be
	// completed. On-disk state is left unchanged when this is returned.
	ErrWriteFailed = errors.New("durable write failed")

	// ErrStoreClosed is returned by Mutate after a failed durable write.
	// The store fails closed: no further mutations are accepted until
	// the underlying storage issue is resolved and the store re-loaded.
	ErrStoreClosed = errors.New("store is closed to writes")

	// ErrNotLoaded is returned when Mutate or Snapshot is called before
	// Load has populated the in-memory documents.
	ErrNotLoaded = errors.New("store has not been loaded")

	// Entity-specific "not found" errors

	// ErrSetNotFound indicates that the requested flashcard set does not exist.
	ErrSetNotFound = fmt.Errorf("%w: flashcard set", ErrNotFound)

	// ErrCardNotFound indicates that the requested flashcard does not exist.
	ErrCardNotFound = fmt.Errorf("%w: flashcard", ErrNotFound)

	// ErrProgressNotFound indicates that a progress record is missing for
	// a card that exists. This only happens with a corrupt store.
	ErrProgressNotFound = fmt.Errorf("%w: review progress", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// PersistenceError is a custom error type for durable storage failures
// with additional context about which document and operation failed.
type PersistenceError struct {
	Document  string // The document involved (e.g., "flashcards", "progress")
	Operation string // The operation that failed (e.g., "load", "save")
	Err       error
}

// Error implements the error interface for PersistenceError.
func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("persistence %s failed for %s document: %v", e.Operation, e.Document, e.Err)
	}
	return fmt.Sprintf("persistence %s failed for %s document", e.Operation, e.Document)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError creates a new PersistenceError.
func NewPersistenceError(document, operation string, err error) *PersistenceError {
	return &PersistenceError{
		Document:  document,
		Operation: operation,
		Err:       err,
	}
}
