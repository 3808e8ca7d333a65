package handlers

import (
	"net/http"

	"promptgate/internal/domain/baseprompt"
	"promptgate/internal/domain/zimage"
	"promptgate/internal/envelope"
)

// AssemblePrompt validates a Z-Image-Turbo prompt document and assembles its
// prompt text without calling a model.
func (a *App) AssemblePrompt(w http.ResponseWriter, r *http.Request) {
	raw, err := baseprompt.DecodeRaw(http.MaxBytesReader(w, r.Body, a.MaxUploadBytes))
	if err != nil {
		a.invalid(w, "body", "Invalid JSON: "+err.Error())
		return
	}
	prompt, err := zimage.Validate(raw)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	out := zimage.Assemble(*prompt)
	if !out.ForbiddenWordsCheck {
		a.Logger.Warn().Strs("forbidden_words", out.ForbiddenWords).Msg("assembled prompt contains forbidden words")
	}
	a.json(w, http.StatusOK, envelope.Success(out, nil))
}
