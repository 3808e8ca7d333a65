package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// LibraryKind enumerates the reusable prompt sections stored in the library.
type LibraryKind string

const (
	LibraryKindStyles       LibraryKind = "styles"
	LibraryKindEnvironments LibraryKind = "environments"
)

// ParseLibraryKind accepts the URL form of a kind ("styles", "Environments ").
func ParseLibraryKind(raw string) (LibraryKind, error) {
	switch LibraryKind(strings.ToLower(strings.TrimSpace(raw))) {
	case LibraryKindStyles:
		return LibraryKindStyles, nil
	case LibraryKindEnvironments:
		return LibraryKindEnvironments, nil
	default:
		return "", ErrInvalidLibraryKind
	}
}

// Section returns the canonical prompt section a library kind stores.
func (k LibraryKind) Section() string {
	if k == LibraryKindEnvironments {
		return "environment"
	}
	return "style"
}

// LibraryItem is a saved style or environment block.
type LibraryItem struct {
	ID          string          `json:"id"`
	Kind        LibraryKind     `json:"kind"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Content     json.RawMessage `json:"content"`
	Tags        []string        `json:"tags"`
	IsPublic    bool            `json:"is_public"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
