package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	// ErrNotFound means no record matched the given criteria. For reads it is
	// a result, not a failure; callers decide whether to elevate it.
	ErrNotFound = errors.New("not found")

	// ErrMalformedQuery means a present query parameter had an invalid shape
	// (unparseable filter JSON, bad date, unknown column). Absent parameters
	// never produce this error.
	ErrMalformedQuery = errors.New("malformed query")

	// ErrValidation means the input references something that does not hold
	// (missing menu, missing root item, bad attribute value).
	ErrValidation = errors.New("validation error")

	// ErrConflict means the store rejected the mutation due to a uniqueness
	// or integrity conflict.
	ErrConflict = errors.New("conflict")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
