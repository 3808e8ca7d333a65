package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"promptgate/internal/domain"
	"promptgate/internal/domain/baseprompt"
	"promptgate/internal/envelope"
)

type libraryItemRequest struct {
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Content     json.RawMessage `json:"content"`
	Tags        []string        `json:"tags"`
	IsPublic    bool            `json:"is_public"`
}

// libraryKind resolves {kind} and checks the library is configured. It
// writes the failure itself and returns false.
func (a *App) libraryKind(w http.ResponseWriter, r *http.Request) (domain.LibraryKind, bool) {
	if a.Library == nil {
		a.fail(w, r, domain.ErrServiceUnavailable)
		return "", false
	}
	kind, err := domain.ParseLibraryKind(chi.URLParam(r, "kind"))
	if err != nil {
		a.fail(w, r, err)
		return "", false
	}
	return kind, true
}

func (a *App) LibraryList(w http.ResponseWriter, r *http.Request) {
	kind, ok := a.libraryKind(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	items, err := a.Library.List(r.Context(), kind, limit, offset)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, envelope.Success(items, nil))
}

func (a *App) LibraryGet(w http.ResponseWriter, r *http.Request) {
	kind, ok := a.libraryKind(w, r)
	if !ok {
		return
	}
	item, err := a.Library.GetByID(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, envelope.Success(item, nil))
}

// LibraryCreate stores a style or environment block after checking it
// with the same rules as the matching prompt section.
func (a *App) LibraryCreate(w http.ResponseWriter, r *http.Request) {
	kind, ok := a.libraryKind(w, r)
	if !ok {
		return
	}
	var req libraryItemRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, a.MaxUploadBytes)).Decode(&req); err != nil {
		a.invalid(w, "body", "Invalid JSON: "+err.Error())
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		a.invalid(w, "title", "Field is required but missing")
		return
	}

	var content any
	if len(bytes.TrimSpace(req.Content)) > 0 {
		raw, err := baseprompt.DecodeRaw(bytes.NewReader(req.Content))
		if err != nil {
			a.invalid(w, "content", "Invalid JSON: "+err.Error())
			return
		}
		content = raw
	}
	if err := baseprompt.ValidateSection(kind.Section(), content); err != nil {
		a.fail(w, r, err)
		return
	}

	item := &domain.LibraryItem{
		Kind:        kind,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
	}
	if err := a.Library.Create(r.Context(), item); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, envelope.Success(item, nil))
}

func (a *App) LibraryDelete(w http.ResponseWriter, r *http.Request) {
	kind, ok := a.libraryKind(w, r)
	if !ok {
		return
	}
	if err := a.Library.Delete(r.Context(), kind, chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
