package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"trustcms/internal/domain/content"
	"trustcms/internal/form"
)

// ErrNotFound is returned when no record matches the kind and id.
var ErrNotFound = errors.New("record not found")

// ContentRepository defines the contract for content data access
type ContentRepository interface {
	Create(ctx context.Context, kind content.Kind, payload json.RawMessage) (*content.Item, error)
	FindByID(ctx context.Context, kind content.Kind, id int64) (*content.Item, error)
	// Update merges patch into the stored payload; keys absent from patch
	// keep their stored value.
	Update(ctx context.Context, kind content.Kind, id int64, patch json.RawMessage) (*content.Item, error)
	Delete(ctx context.Context, kind content.Kind, id int64) error
	List(ctx context.Context, kind content.Kind, q form.Pagination) ([]*content.Item, int64, error)
}

// ListCache stores encoded list pages per kind and query.
type ListCache interface {
	// Get looks up a page and returns the key it lives under. A page read
	// from the repository after Get must be stored with Set under that key,
	// so a write that lands in between orphans it.
	Get(ctx context.Context, kind content.Kind, q form.Pagination) (page []byte, key string, hit bool, err error)
	Set(ctx context.Context, key string, page []byte) error
	// Invalidate drops every cached page of kind.
	Invalidate(ctx context.Context, kind content.Kind) error
}
