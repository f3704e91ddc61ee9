package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
)

// Generative text failures. Adapters wrap these so callers can branch with
// errors.Is without knowing which upstream produced the failure.
var (
	ErrAIMisconfigured   = errors.New("ai service is not configured")
	ErrAIUnavailable     = errors.New("ai service unavailable")
	ErrAIRequestFailed   = errors.New("ai request failed")
	ErrAIInvalidResponse = errors.New("invalid ai response")
	ErrAIFormat          = errors.New("ai response format invalid")
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

// UserMessage returns the short notice shown to an end user for err.
// Upstream status codes, bodies and raw model output never appear in it.
func UserMessage(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, ErrAIMisconfigured):
		return "The AI service is not configured. Set the API key and try again."
	case errors.Is(err, ErrAIUnavailable):
		return "The AI service is busy, please try again later."
	case errors.Is(err, ErrAIInvalidResponse):
		return "Invalid AI response, please retry. The content might have been blocked."
	case errors.Is(err, ErrAIFormat):
		return "The AI's response format was invalid, please retry."
	case errors.Is(err, ErrAIRequestFailed):
		return "The AI request failed, please try again."
	case errors.Is(err, ErrUnauthorized):
		return "You need to sign in first."
	case errors.Is(err, ErrNotFound):
		return "Not found."
	case errors.Is(err, ErrConflict):
		return "A plan is already being generated."
	default:
		return "Something went wrong, please try again."
	}
}
