package domain

import "context"

// LibraryRepository persists reusable style and environment blocks.
type LibraryRepository interface {
	Create(ctx context.Context, item *LibraryItem) error
	GetByID(ctx context.Context, kind LibraryKind, id string) (*LibraryItem, error)
	List(ctx context.Context, kind LibraryKind, limit, offset int) ([]LibraryItem, error)
	Delete(ctx context.Context, kind LibraryKind, id string) error
}
