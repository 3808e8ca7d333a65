package handlers

import (
	"net/http"

	"github.com/invopop/jsonschema"

	"promptgate/internal/domain/baseprompt"
	"promptgate/internal/domain/vocab"
	"promptgate/internal/domain/zimage"
	"promptgate/internal/envelope"
	"promptgate/internal/providers/image"
)

func (a *App) Providers(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, envelope.Success(image.Providers(), nil))
}

func (a *App) Vocabulary(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, envelope.Success(vocab.Default(), nil))
}

// BasePromptSchema serves the JSON Schema of the base prompt document.
func (a *App) BasePromptSchema(w http.ResponseWriter, _ *http.Request) {
	a.schema(w, baseprompt.Schema())
}

// ZImagePromptSchema serves the JSON Schema of the Z-Image-Turbo prompt.
func (a *App) ZImagePromptSchema(w http.ResponseWriter, _ *http.Request) {
	a.schema(w, zimage.Schema())
}

func (a *App) schema(w http.ResponseWriter, s *jsonschema.Schema) {
	data, err := s.MarshalJSON()
	if err != nil {
		a.json(w, http.StatusInternalServerError, envelope.New(envelope.CodeInternal, "Internal server error"))
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
