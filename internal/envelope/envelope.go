// Package envelope builds the uniform success and error response bodies.
package envelope

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"promptgate/internal/domain"
)

// Code is the machine-readable error class.
type Code string

const (
	CodeValidation Code = "VALIDATION_ERROR"
	CodeProvider   Code = "PROVIDER_ERROR"
	CodeTimeout    Code = "TIMEOUT"
	CodeInternal   Code = "INTERNAL_ERROR"
)

// HTTPStatus is the default response status for a code.
func HTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeProvider:
		return http.StatusBadRequest
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ErrorEnvelope is the body of every failed response.
type ErrorEnvelope struct {
	ErrorCode     Code                 `json:"error_code"`
	Message       string               `json:"message"`
	CorrelationID string               `json:"correlation_id"`
	Details       []domain.ErrorDetail `json:"details,omitempty"`

	status int
}

// Status is the HTTP status the envelope should be sent with.
func (e ErrorEnvelope) Status() int {
	if e.status == 0 {
		return HTTPStatus(e.ErrorCode)
	}
	return e.status
}

// SuccessEnvelope wraps a provider payload or any other result.
type SuccessEnvelope struct {
	Success         bool     `json:"success"`
	Data            any      `json:"data"`
	DefaultsApplied []string `json:"defaults_applied"`
	CorrelationID   string   `json:"correlation_id"`
}

// Success builds a success envelope with a fresh correlation id.
func Success(data any, defaultsApplied []string) SuccessEnvelope {
	applied := make([]string, len(defaultsApplied))
	copy(applied, defaultsApplied)
	return SuccessEnvelope{
		Success:         true,
		Data:            data,
		DefaultsApplied: applied,
		CorrelationID:   newCorrelationID(),
	}
}

// New builds an error envelope with a fresh correlation id.
func New(code Code, message string, details ...domain.ErrorDetail) ErrorEnvelope {
	return ErrorEnvelope{
		ErrorCode:     code,
		Message:       message,
		CorrelationID: newCorrelationID(),
		Details:       details,
		status:        HTTPStatus(code),
	}
}

// RateLimited is the body of a 429 response. It is an INTERNAL_ERROR: the
// request itself was fine, the client only has to retry later.
func RateLimited() ErrorEnvelope {
	return New(CodeInternal, "Too many requests, retry later").withStatus(http.StatusTooManyRequests)
}

func (e ErrorEnvelope) withStatus(status int) ErrorEnvelope {
	e.status = status
	return e
}

// FromError classifies err. Unclassified errors get a generic message; their
// text is never exposed.
func FromError(err error) ErrorEnvelope {
	var (
		verr *domain.ValidationError
		perr *domain.UnknownProviderError
	)
	switch {
	case errors.As(err, &verr):
		return New(CodeValidation, "Prompt validation failed", verr.Details...)
	case errors.As(err, &perr):
		return New(CodeProvider, "Unknown provider: "+perr.Name)
	case errors.Is(err, domain.ErrUnknownProvider):
		return New(CodeProvider, "Unknown provider")
	case errors.Is(err, domain.ErrInvalidLibraryKind):
		return New(CodeValidation, "Invalid library kind", domain.ErrorDetail{
			FieldPath: "kind",
			Message:   "Input should be 'styles' or 'environments'",
		})
	case errors.Is(err, domain.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return New(CodeTimeout, "Upstream service timed out")
	case errors.Is(err, domain.ErrNotFound):
		return New(CodeValidation, "Item not found", domain.ErrorDetail{
			FieldPath: "id",
			Message:   "No item with this id",
		}).withStatus(http.StatusNotFound)
	case errors.Is(err, domain.ErrServiceUnavailable):
		return New(CodeInternal, "Service not configured").withStatus(http.StatusServiceUnavailable)
	case errors.Is(err, domain.ErrAdaptation):
		return New(CodeInternal, "Prompt adaptation failed")
	default:
		return New(CodeInternal, "Internal server error")
	}
}

func newCorrelationID() string {
	return uuid.NewString()
}
