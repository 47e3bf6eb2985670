package gemini

import "errors"

// Package-specific errors for the Gemini generator.
var (
	// ErrEmptyContextText is returned when the context text passed to
	// GenerateCards is empty.
	ErrEmptyContextText = errors.New("context text cannot be empty")

	// ErrNonPositiveCount is returned when the desired card count is
	// zero or negative.
	ErrNonPositiveCount = errors.New("desired card count must be positive")
)
