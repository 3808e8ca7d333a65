package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"promptgate/internal/domain/baseprompt"
	"promptgate/internal/pipeline"
)

// Adapt translates the base prompt in the body for the {model} provider.
// ?defaults=false skips the defaulter.
func (a *App) Adapt(w http.ResponseWriter, r *http.Request) {
	raw, err := baseprompt.DecodeRaw(http.MaxBytesReader(w, r.Body, a.MaxUploadBytes))
	if err != nil {
		a.invalid(w, "body", "Invalid JSON: "+err.Error())
		return
	}
	opts := pipeline.Options{}
	if v := r.URL.Query().Get("defaults"); v != "" {
		apply, err := strconv.ParseBool(v)
		if err != nil {
			a.invalid(w, "defaults", "Input should be a valid boolean")
			return
		}
		opts.SkipDefaults = !apply
	}
	status, body := a.Translator.Respond(chi.URLParam(r, "model"), raw, opts)
	a.json(w, status, body)
}
