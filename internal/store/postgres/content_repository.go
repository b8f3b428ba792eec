package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"trustcms/internal/domain/content"
	"trustcms/internal/form"
	"trustcms/internal/store/repositories"

	"github.com/jackc/pgx/v5"
)

const itemColumns = `id, kind, payload, created_at, updated_at`

// maxPrealloc caps the result slice capacity; limit is not bounded.
const maxPrealloc = 100

// listFilter is shared by the count and page queries. $1 kind, $2 active
// filter, $3 search pattern.
const listFilter = `
		WHERE kind = $1
		  AND ($2::boolean IS NULL OR (payload->>'active')::boolean = $2)
		  AND ($3::text IS NULL OR payload->>'title' ILIKE $3)`

// contentRepository implements ContentRepository over a single JSONB table
type contentRepository struct {
	db DB
}

// NewContentRepository creates a new content repository
func NewContentRepository(db DB) repositories.ContentRepository {
	return &contentRepository{db: db}
}

// Create inserts a new record
func (r *contentRepository) Create(ctx context.Context, kind content.Kind, payload json.RawMessage) (*content.Item, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO content_items (kind, payload)
		VALUES ($1, $2::jsonb)
		RETURNING `+itemColumns,
		string(kind), string(payload))

	return scanItem(row)
}

// FindByID finds a record by kind and id
func (r *contentRepository) FindByID(ctx context.Context, kind content.Kind, id int64) (*content.Item, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM content_items
		WHERE kind = $1 AND id = $2`,
		string(kind), id)

	return scanItem(row)
}

// Update merges patch into the stored payload
func (r *contentRepository) Update(ctx context.Context, kind content.Kind, id int64, patch json.RawMessage) (*content.Item, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE content_items
		SET payload = payload || $3::jsonb, updated_at = now()
		WHERE kind = $1 AND id = $2
		RETURNING `+itemColumns,
		string(kind), id, string(patch))

	return scanItem(row)
}

// Delete removes a record
func (r *contentRepository) Delete(ctx context.Context, kind content.Kind, id int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM content_items
		WHERE kind = $1 AND id = $2`,
		string(kind), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// List returns one page of records ordered by their order field, plus the
// total number of matching records.
func (r *contentRepository) List(ctx context.Context, kind content.Kind, q form.Pagination) ([]*content.Item, int64, error) {
	var search *string
	if q.Search != nil {
		pattern := "%" + escapeLike(*q.Search) + "%"
		search = &pattern
	}

	var total int64
	if err := r.db.QueryRow(ctx, `
		SELECT count(*)
		FROM content_items`+listFilter,
		string(kind), q.Active, search).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM content_items`+listFilter+`
		ORDER BY (payload->>'order')::numeric NULLS LAST, id
		LIMIT $4 OFFSET $5`,
		string(kind), q.Active, search, q.Limit, q.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]*content.Item, 0, min(max(q.Limit, 0), maxPrealloc))
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// scanItem scans a single row into a content item
func scanItem(row pgx.Row) (*content.Item, error) {
	var item content.Item
	var kind string
	var payload []byte

	err := row.Scan(&item.ID, &kind, &payload, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	item.Kind = content.Kind(kind)
	item.Data = json.RawMessage(payload)
	return &item, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
