package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"promptgate/internal/domain"
	"promptgate/internal/domain/zimage"
	"promptgate/internal/envelope"
)

const maxTextInput = 8000

// imageMIMEs are the upload types the vision model accepts.
var imageMIMEs = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
	"image/heic": {},
}

type textRequest struct {
	Text string `json:"text"`
}

// TextToBase asks the text model to structure free text into a base prompt.
func (a *App) TextToBase(w http.ResponseWriter, r *http.Request) {
	text, ok := a.readText(w, r)
	if !ok {
		return
	}
	prompt, err := a.Structurer.TextToBase(r.Context(), text)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, envelope.Success(prompt, nil))
}

// ImageToBase asks the vision model to describe an uploaded image as a
// base prompt. The image arrives as the multipart field "file".
func (a *App) ImageToBase(w http.ResponseWriter, r *http.Request) {
	data, mime, ok := a.readImage(w, r)
	if !ok {
		return
	}
	prompt, err := a.Structurer.ImageToBase(r.Context(), data, mime)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, envelope.Success(prompt, nil))
}

// TextToPrompt structures free text into a Z-Image-Turbo prompt and
// assembles its prompt text.
func (a *App) TextToPrompt(w http.ResponseWriter, r *http.Request) {
	text, ok := a.readText(w, r)
	if !ok {
		return
	}
	prompt, err := a.Structurer.TextToPrompt(r.Context(), text)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, envelope.Success(zimage.Assemble(*prompt), nil))
}

// ImageToJSON extracts a Z-Image-Turbo prompt from an uploaded image.
func (a *App) ImageToJSON(w http.ResponseWriter, r *http.Request) {
	data, mime, ok := a.readImage(w, r)
	if !ok {
		return
	}
	prompt, err := a.Structurer.ImageToPrompt(r.Context(), data, mime)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, envelope.Success(prompt, nil))
}

// readText decodes {"text": ...}. It writes the error response itself and
// reports false when the handler should stop.
func (a *App) readText(w http.ResponseWriter, r *http.Request) (string, bool) {
	if a.Structurer == nil {
		a.fail(w, r, domain.ErrServiceUnavailable)
		return "", false
	}
	var req textRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, a.MaxUploadBytes)).Decode(&req); err != nil {
		a.invalid(w, "body", "Invalid JSON: "+err.Error())
		return "", false
	}
	text := strings.TrimSpace(req.Text)
	switch {
	case text == "":
		a.invalid(w, "text", "Field is required but missing")
		return "", false
	case len([]rune(text)) > maxTextInput:
		a.invalid(w, "text", "String should have at most 8000 characters")
		return "", false
	}
	return text, true
}

// readImage reads the multipart field "file" and sniffs its type.
func (a *App) readImage(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	if a.Structurer == nil {
		a.fail(w, r, domain.ErrServiceUnavailable)
		return nil, "", false
	}
	r.Body = http.MaxBytesReader(w, r.Body, a.MaxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.invalid(w, "file", "File exceeds the upload limit")
			return nil, "", false
		}
		a.invalid(w, "file", "Field is required but missing")
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.invalid(w, "file", "File could not be read")
		return nil, "", false
	}
	if len(data) == 0 {
		a.invalid(w, "file", "File is empty")
		return nil, "", false
	}
	mime := mimetype.Detect(data).String()
	if _, ok := imageMIMEs[mime]; !ok {
		a.invalid(w, "file", "Unsupported file type "+mime)
		return nil, "", false
	}
	return data, mime, true
}
