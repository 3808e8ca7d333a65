package envelope

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptgate/internal/domain"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   Code
		status int
		paths  []string
	}{
		{
			name:   "validation",
			err:    domain.NewValidationError([]domain.ErrorDetail{{FieldPath: "subject", Message: "Field is required but missing"}, {FieldPath: "technical.seed", Message: "Input should be a valid integer"}}),
			code:   CodeValidation,
			status: http.StatusBadRequest,
			paths:  []string{"subject", "technical.seed"},
		},
		{"unknown provider", &domain.UnknownProviderError{Name: "Made-Up"}, CodeProvider, http.StatusBadRequest, nil},
		{"wrapped timeout", fmt.Errorf("gemini: %w", domain.ErrTimeout), CodeTimeout, http.StatusGatewayTimeout, nil},
		{"deadline", context.DeadlineExceeded, CodeTimeout, http.StatusGatewayTimeout, nil},
		{"not found", fmt.Errorf("library: %w", domain.ErrNotFound), CodeValidation, http.StatusNotFound, []string{"id"}},
		{"bad kind", domain.ErrInvalidLibraryKind, CodeValidation, http.StatusBadRequest, []string{"kind"}},
		{"unavailable", domain.ErrServiceUnavailable, CodeInternal, http.StatusServiceUnavailable, nil},
		{"adaptation", fmt.Errorf("%w: boom", domain.ErrAdaptation), CodeInternal, http.StatusInternalServerError, nil},
		{"unclassified", errors.New("pq: connection refused"), CodeInternal, http.StatusInternalServerError, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := FromError(tc.err)
			assert.Equal(t, tc.code, env.ErrorCode)
			assert.Equal(t, tc.status, env.Status())
			_, err := uuid.Parse(env.CorrelationID)
			require.NoError(t, err)

			var got []string
			for _, d := range env.Details {
				got = append(got, d.FieldPath)
			}
			assert.Equal(t, tc.paths, got)
		})
	}
}

func TestFromErrorKeepsProviderName(t *testing.T) {
	env := FromError(&domain.UnknownProviderError{Name: "Made-Up-Model"})
	assert.Equal(t, "Unknown provider: Made-Up-Model", env.Message)
}

func TestFromErrorHidesInternalText(t *testing.T) {
	env := FromError(errors.New("dial tcp 10.0.0.3:5432: secret host"))
	assert.NotContains(t, env.Message, "10.0.0.3")
}

func TestCorrelationIDsAreFresh(t *testing.T) {
	a := New(CodeInternal, "x")
	b := New(CodeInternal, "x")
	assert.NotEqual(t, a.CorrelationID, b.CorrelationID)

	s1 := Success(nil, nil)
	s2 := Success(nil, nil)
	assert.NotEqual(t, s1.CorrelationID, s2.CorrelationID)
}

func TestEnvelopeJSON(t *testing.T) {
	data, err := json.Marshal(New(CodeProvider, "Unknown provider: x"))
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "PROVIDER_ERROR", m["error_code"])
	assert.NotContains(t, m, "details")
	assert.NotContains(t, m, "status")

	data, err = json.Marshal(Success(map[string]string{"model": "flux"}, nil))
	require.NoError(t, err)
	m = nil
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, true, m["success"])
	assert.Equal(t, []any{}, m["defaults_applied"])
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(CodeValidation))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(CodeProvider))
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatus(CodeTimeout))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(CodeInternal))
	assert.Equal(t, http.StatusInternalServerError, ErrorEnvelope{ErrorCode: CodeInternal}.Status())
}

func TestRateLimited(t *testing.T) {
	env := RateLimited()
	assert.Equal(t, CodeInternal, env.ErrorCode)
	assert.Equal(t, http.StatusTooManyRequests, env.Status())
	assert.Empty(t, env.Details)
	_, err := uuid.Parse(env.CorrelationID)
	require.NoError(t, err)
}
