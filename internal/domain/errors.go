package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidPrompt      = errors.New("invalid prompt")
	ErrUnknownProvider    = errors.New("unknown provider")
	ErrAdaptation         = errors.New("adaptation failed")
	ErrTimeout            = errors.New("upstream timeout")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrInvalidLibraryKind = errors.New("invalid library kind")
)

// UnknownFieldPath is reported when a failure cannot be tied to a schema field.
const UnknownFieldPath = "unknown"

// ErrorDetail describes a single field-level failure. FieldPath follows the
// canonical schema nesting, e.g. "subject.description".
type ErrorDetail struct {
	FieldPath string `json:"field_path"`
	Message   string `json:"message"`
}

// ValidationError carries every field-level failure found in one input.
type ValidationError struct {
	Details []ErrorDetail
}

// NewValidationError copies details so callers can keep appending to their slice.
func NewValidationError(details []ErrorDetail) *ValidationError {
	out := make([]ErrorDetail, len(details))
	copy(out, details)
	return &ValidationError{Details: out}
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return ErrInvalidPrompt.Error()
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, fmt.Sprintf("%s: %s", d.FieldPath, d.Message))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidPrompt, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidPrompt
}

// UnknownProviderError reports a provider name that resolves to no adapter.
// Name is kept exactly as the caller sent it.
type UnknownProviderError struct {
	Name string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownProvider, e.Name)
}

func (e *UnknownProviderError) Unwrap() error {
	return ErrUnknownProvider
}
