package allocator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoEmployees is returned when there is nobody to schedule
	ErrNoEmployees = errors.New("no schedulable employees")

	// ErrNoDemand is returned when neither shift slots nor staffing rules are configured
	ErrNoDemand = errors.New("no shift slots or staffing rules configured")

	// ErrMalformedResponse is returned when a generator response cannot be parsed into shifts
	ErrMalformedResponse = errors.New("malformed generator response")
)

// ValidationError is returned when a candidate schedule breaks a hard constraint.
// It carries every error found so callers can report them together.
type ValidationError struct {
	Message string
	Errors  []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Errors, "; "))
}

// NewValidationError builds a ValidationError from a failed validation result
func NewValidationError(result ValidationResult) *ValidationError {
	return &ValidationError{
		Message: "Schedule validation failed",
		Errors:  result.Errors,
	}
}

// GenerationError is returned when a strategy could not produce a usable schedule
type GenerationError struct {
	Strategy string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s schedule generation failed: %v", e.Strategy, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
