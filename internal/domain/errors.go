package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrValidation      = errors.New("validation error")
	ErrConflict        = errors.New("conflict")
	ErrRateUnavailable = errors.New("exchange rate unavailable")
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

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// Stage names a step of the per-message pipeline.
type Stage string

const (
	StageValidate Stage = "validate"
	StageSeen     Stage = "seen"
	StageSanitize Stage = "sanitize"
	StageGate     Stage = "gate"
	StageClassify Stage = "classify"
	StageExtract  Stage = "extract"
	StageDedup    Stage = "dedup"
	StageSalary   Stage = "salary"
	StagePosition Stage = "position"
	StageResolve  Stage = "resolve"
	StageCommit   Stage = "commit"
)

// StageError is returned by the pipeline when a message cannot be processed.
// Retryable failures must be replayed; the rest are skipped.
type StageError struct {
	Stage     Stage
	Retryable bool
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is a StageError marked for replay.
func IsRetryable(err error) bool {
	var se *StageError
	return errors.As(err, &se) && se.Retryable
}
