package service

import (
	"errors"
	"fmt"

	"github.com/nvallens/studydeck-api/internal/domain"
	"github.com/nvallens/studydeck-api/internal/store"
)

// ServiceError wraps unexpected errors from a service with context
// about the operation that failed. Expected conditions (validation
// failures, not-found lookups) are returned as their sentinel errors
// directly so callers can branch on errors.Is.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_set", "record_review")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError. Known sentinel errors
// (validation, not-found, persistence) pass through unwrapped so the
// caller's errors.Is checks keep working.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	var persistErr *store.PersistenceError
	if errors.Is(err, domain.ErrValidation) ||
		store.IsNotFoundError(err) ||
		errors.As(err, &persistErr) {
		return err
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
