package api

import (
	"errors"
	"net/http"

	"github.com/nvallens/studydeck-api/internal/domain"
	"github.com/nvallens/studydeck-api/internal/generation"
	"github.com/nvallens/studydeck-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	var persistErr *store.PersistenceError

	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Upstream generation failures
	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrContentBlocked):
		return http.StatusBadGateway

	// Storage failures: the store fails closed, so writes are refused
	// until the operator intervenes.
	case errors.As(err, &persistErr):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	var persistErr *store.PersistenceError

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()

	case errors.Is(err, domain.ErrValidation):
		return "Invalid request data"

	case errors.Is(err, store.ErrSetNotFound):
		return "Flashcard set not found"

	case errors.Is(err, store.ErrCardNotFound):
		return "Flashcard not found"

	case store.IsNotFoundError(err):
		return "Resource not found"

	case errors.Is(err, generation.ErrContentBlocked):
		return "Flashcard generation was blocked by the content filter"

	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrTransientFailure):
		return "Flashcard generation failed"

	case errors.As(err, &persistErr):
		return "Storage is unavailable"

	default:
		return "An unexpected error occurred"
	}
}
