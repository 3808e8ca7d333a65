package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"promptgate/internal/domain"
	"promptgate/internal/infra"
	"promptgate/internal/sqlinline"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// LibraryRepositoryPG implements domain.LibraryRepository on PostgreSQL.
type LibraryRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewLibraryRepository constructs a new library repository instance.
func NewLibraryRepository(sql infra.SQLExecutor) *LibraryRepositoryPG {
	return &LibraryRepositoryPG{sql: sql}
}

// Create stores item, assigning an id when empty and filling the timestamps.
func (r *LibraryRepositoryPG) Create(ctx context.Context, item *domain.LibraryItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertLibraryItem,
		item.ID, string(item.Kind), item.Title, item.Description, string(item.Content), item.Tags, item.IsPublic)
	if err := row.Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
		return fmt.Errorf("insert library item: %w", err)
	}
	return nil
}

// GetByID returns domain.ErrNotFound for unknown or malformed ids.
func (r *LibraryRepositoryPG) GetByID(ctx context.Context, kind domain.LibraryKind, id string) (*domain.LibraryItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("library item %q: %w", id, domain.ErrNotFound)
	}
	item, err := scanItem(r.sql.QueryRow(ctx, sqlinline.QSelectLibraryItem, string(kind), id))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, fmt.Errorf("library item %q: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("select library item: %w", err)
	}
	return item, nil
}

// List returns items of kind, newest first. limit is clamped to [1, 100].
func (r *LibraryRepositoryPG) List(ctx context.Context, kind domain.LibraryKind, limit, offset int) ([]domain.LibraryItem, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.sql.Query(ctx, sqlinline.QListLibraryItems, string(kind), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list library items: %w", err)
	}
	defer rows.Close()

	items := []domain.LibraryItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan library item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes one item; deleting a missing item is domain.ErrNotFound.
func (r *LibraryRepositoryPG) Delete(ctx context.Context, kind domain.LibraryKind, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("library item %q: %w", id, domain.ErrNotFound)
	}
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteLibraryItem, string(kind), id)
	if err != nil {
		return fmt.Errorf("delete library item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("library item %q: %w", id, domain.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*domain.LibraryItem, error) {
	var (
		item    domain.LibraryItem
		kind    string
		content string
	)
	if err := row.Scan(&item.ID, &kind, &item.Title, &item.Description, &content, &item.Tags,
		&item.IsPublic, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.Kind = domain.LibraryKind(kind)
	item.Content = json.RawMessage(content)
	if item.Tags == nil {
		item.Tags = []string{}
	}
	return &item, nil
}

var _ domain.LibraryRepository = (*LibraryRepositoryPG)(nil)
