package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"promptgate/internal/domain"
	"promptgate/internal/domain/baseprompt"
	"promptgate/internal/domain/zimage"
	"promptgate/internal/envelope"
	"promptgate/internal/middleware"
	"promptgate/internal/pipeline"
)

const defaultMaxUploadBytes = 10 << 20

// Structurer turns free text or an image into a validated base prompt or
// Z-Image-Turbo prompt.
type Structurer interface {
	TextToBase(ctx context.Context, text string) (*baseprompt.Prompt, error)
	ImageToBase(ctx context.Context, image []byte, mime string) (*baseprompt.Prompt, error)
	TextToPrompt(ctx context.Context, text string) (*zimage.Prompt, error)
	ImageToPrompt(ctx context.Context, image []byte, mime string) (*zimage.Prompt, error)
}

// App carries the dependencies shared by every handler. Structurer and
// Library are optional; their endpoints answer 503 when unset.
type App struct {
	Translator     *pipeline.Translator
	Structurer     Structurer
	Library        domain.LibraryRepository
	Logger         zerolog.Logger
	MaxUploadBytes int64
}

func NewApp(logger zerolog.Logger) *App {
	return &App{
		Translator:     pipeline.NewTranslator(logger),
		Logger:         logger,
		MaxUploadBytes: defaultMaxUploadBytes,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// fail classifies err into an error envelope and writes it.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	env := envelope.FromError(err)
	ev := a.Logger.Warn()
	if env.Status() >= http.StatusInternalServerError {
		ev = a.Logger.Error()
	}
	ev.Err(err).
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Str("path", r.URL.Path).
		Str("error_code", string(env.ErrorCode)).
		Str("correlation_id", env.CorrelationID).
		Msg("request failed")
	a.json(w, env.Status(), env)
}

// invalid writes a single-detail validation envelope.
func (a *App) invalid(w http.ResponseWriter, field, message string) {
	env := envelope.New(envelope.CodeValidation, "Request validation failed", domain.ErrorDetail{
		FieldPath: field,
		Message:   message,
	})
	a.json(w, env.Status(), env)
}

// RateLimited is the 429 body of the rate limit middleware.
func (a *App) RateLimited(w http.ResponseWriter, _ *http.Request) {
	env := envelope.RateLimited()
	a.json(w, env.Status(), env)
}

// NotFound answers unknown routes with an error envelope.
func (a *App) NotFound(w http.ResponseWriter, r *http.Request) {
	env := envelope.New(envelope.CodeValidation, "Route not found", domain.ErrorDetail{
		FieldPath: "path",
		Message:   "No route for " + r.Method + " " + r.URL.Path,
	})
	a.json(w, http.StatusNotFound, env)
}

// MethodNotAllowed answers known routes called with the wrong method.
func (a *App) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	env := envelope.New(envelope.CodeValidation, "Method not allowed", domain.ErrorDetail{
		FieldPath: "method",
		Message:   r.Method + " is not supported on " + r.URL.Path,
	})
	a.json(w, http.StatusMethodNotAllowed, env)
}
