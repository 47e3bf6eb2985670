package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// The specific sentinels below all wrap it, so a single
	// errors.Is(err, ErrValidation) catches every validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyTitle is returned when a flashcard set is created without a title.
	ErrEmptyTitle = fmt.Errorf("%w: set title cannot be empty", ErrValidation)

	// ErrEmptyQuestion is returned when a flashcard candidate has no question.
	ErrEmptyQuestion = fmt.Errorf("%w: flashcard question cannot be empty", ErrValidation)

	// ErrEmptyAnswer is returned when a flashcard candidate has no answer.
	ErrEmptyAnswer = fmt.Errorf("%w: flashcard answer cannot be empty", ErrValidation)

	// ErrNoCandidates is returned when an add-flashcards request carries
	// no candidates at all.
	ErrNoCandidates = fmt.Errorf("%w: at least one flashcard candidate is required", ErrValidation)
)

// ValidationError describes a validation failure on a specific field.
// It wraps ErrValidation (or a more specific sentinel) so callers can
// use errors.Is while still surfacing which field was at fault.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError for the given field.
// If err is nil, the generic ErrValidation sentinel is wrapped instead.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
