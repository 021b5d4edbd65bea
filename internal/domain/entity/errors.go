package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ChunkingError indicates that a document could not be split into valid
// chunks. Reason describes the violated constraint; Runes carries the
// offending length when one exists.
type ChunkingError struct {
	Reason string
	Runes  int
}

// Error returns a formatted error message for the chunking error.
func (e *ChunkingError) Error() string {
	if e.Runes > 0 {
		return fmt.Sprintf("chunking failed: %s (%d runes)", e.Reason, e.Runes)
	}
	return fmt.Sprintf("chunking failed: %s", e.Reason)
}

// InferenceError indicates that a model invocation failed. The pipeline
// never retries inference; the error propagates to the caller as-is.
type InferenceError struct {
	Provider string
	Err      error
}

// Error returns a formatted error message for the inference error.
func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed (provider=%s): %v", e.Provider, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *InferenceError) Unwrap() error {
	return e.Err
}
