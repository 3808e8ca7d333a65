// Package pipeline runs the translate-and-adapt flow: validate the raw
// prompt, optionally apply defaults, resolve the provider adapter and adapt.
package pipeline

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"promptgate/internal/domain"
	"promptgate/internal/domain/baseprompt"
	"promptgate/internal/envelope"
	"promptgate/internal/providers/image"
)

// Options tunes a single translation.
type Options struct {
	SkipDefaults bool
}

// Result is a successful translation.
type Result struct {
	Provider        string
	Payload         image.Payload
	DefaultsApplied []string
}

// Translator holds no per-request state and is safe for concurrent use.
type Translator struct {
	log zerolog.Logger
}

func NewTranslator(log zerolog.Logger) *Translator {
	return &Translator{log: log}
}

// Translate validates raw, fills defaults unless skipped, and adapts the
// result for provider. raw is never modified.
func (t *Translator) Translate(provider string, raw any, opts Options) (Result, error) {
	prompt, err := baseprompt.Validate(raw)
	if err != nil {
		return Result{}, err
	}

	applied := []string{}
	if !opts.SkipDefaults {
		augmented, paths := baseprompt.ApplyDefaults(raw)
		if len(paths) > 0 {
			prompt, err = baseprompt.Validate(augmented)
			if err != nil {
				// Not wrapped: a defaulting bug must not surface as a client error.
				return Result{}, fmt.Errorf("defaulted prompt is invalid: %v", err)
			}
			applied = paths
		}
	}

	adapter, err := image.Get(provider)
	if err != nil {
		return Result{}, err
	}
	payload, err := adapt(adapter, *prompt)
	if err != nil {
		return Result{}, err
	}
	return Result{Provider: adapter.Name(), Payload: payload, DefaultsApplied: applied}, nil
}

// Respond runs Translate and wraps the outcome in the matching envelope.
func (t *Translator) Respond(provider string, raw any, opts Options) (int, any) {
	res, err := t.Translate(provider, raw, opts)
	if err != nil {
		env := envelope.FromError(err)
		ev := t.log.Warn()
		if env.Status() >= http.StatusInternalServerError {
			ev = t.log.Error()
		}
		ev.Err(err).
			Str("provider", provider).
			Str("error_code", string(env.ErrorCode)).
			Int("details", len(env.Details)).
			Str("correlation_id", env.CorrelationID).
			Msg("prompt adaptation failed")
		return env.Status(), env
	}

	env := envelope.Success(res.Payload, res.DefaultsApplied)
	t.log.Debug().
		Str("provider", res.Provider).
		Strs("defaults_applied", res.DefaultsApplied).
		Str("correlation_id", env.CorrelationID).
		Msg("prompt adapted")
	return http.StatusOK, env
}

// adapt converts an adapter panic into ErrAdaptation.
func adapt(a image.Adapter, p baseprompt.Prompt) (payload image.Payload, err error) {
	defer func() {
		if r := recover(); r != nil {
			payload = nil
			err = fmt.Errorf("%w: %s: %v", domain.ErrAdaptation, a.Name(), r)
		}
	}()
	return a.Adapt(p)
}
