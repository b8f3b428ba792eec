// Package memory is an in-process ContentRepository for local development
// and tests. It mirrors the postgres repository's filtering and ordering.
package memory

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"trustcms/internal/domain/content"
	"trustcms/internal/form"
	"trustcms/internal/store/repositories"
)

type record struct {
	item   content.Item
	fields map[string]any
}

// ContentRepository keeps records in a map guarded by a mutex.
type ContentRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]*record
	now    func() time.Time
}

func NewContentRepository() *ContentRepository {
	return &ContentRepository{items: make(map[int64]*record), now: time.Now}
}

var _ repositories.ContentRepository = (*ContentRepository)(nil)

func (r *ContentRepository) Create(_ context.Context, kind content.Kind, payload json.RawMessage) (*content.Item, error) {
	fields, err := decodeObject(payload)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ts := r.now().UTC()
	rec := &record{
		item:   content.Item{ID: r.nextID, Kind: kind, CreatedAt: ts, UpdatedAt: ts},
		fields: fields,
	}
	if err := rec.sync(); err != nil {
		return nil, err
	}
	r.items[rec.item.ID] = rec
	return rec.snapshot(), nil
}

func (r *ContentRepository) FindByID(_ context.Context, kind content.Kind, id int64) (*content.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.items[id]
	if !ok || rec.item.Kind != kind {
		return nil, repositories.ErrNotFound
	}
	return rec.snapshot(), nil
}

func (r *ContentRepository) Update(_ context.Context, kind content.Kind, id int64, patch json.RawMessage) (*content.Item, error) {
	changes, err := decodeObject(patch)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.items[id]
	if !ok || rec.item.Kind != kind {
		return nil, repositories.ErrNotFound
	}
	for k, v := range changes {
		rec.fields[k] = v
	}
	rec.item.UpdatedAt = r.now().UTC()
	if err := rec.sync(); err != nil {
		return nil, err
	}
	return rec.snapshot(), nil
}

func (r *ContentRepository) Delete(_ context.Context, kind content.Kind, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.items[id]
	if !ok || rec.item.Kind != kind {
		return repositories.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *ContentRepository) List(_ context.Context, kind content.Kind, q form.Pagination) ([]*content.Item, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*record
	for _, rec := range r.items {
		if rec.item.Kind == kind && rec.matches(q) {
			matched = append(matched, rec)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		oi, oj := matched[i].order(), matched[j].order()
		if oi != oj {
			return oi < oj
		}
		return matched[i].item.ID < matched[j].item.ID
	})

	total := int64(len(matched))
	start := min(max(q.Offset(), 0), len(matched))
	end := len(matched)
	if q.Limit >= 0 && q.Limit < end-start {
		end = start + q.Limit
	}
	out := make([]*content.Item, 0, end-start)
	for _, rec := range matched[start:end] {
		out = append(out, rec.snapshot())
	}
	return out, total, nil
}

func (rec *record) matches(q form.Pagination) bool {
	if q.Active != nil {
		active, ok := rec.fields["active"].(bool)
		if !ok || active != *q.Active {
			return false
		}
	}
	if q.Search != nil {
		title, _ := rec.fields["title"].(string)
		if !strings.Contains(strings.ToLower(title), strings.ToLower(*q.Search)) {
			return false
		}
	}
	return true
}

// order sorts records without an order value last.
func (rec *record) order() float64 {
	if n, ok := rec.fields["order"].(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return math.Inf(1)
}

func (rec *record) sync() error {
	b, err := json.Marshal(rec.fields)
	if err != nil {
		return err
	}
	rec.item.Data = b
	return nil
}

func (rec *record) snapshot() *content.Item {
	item := rec.item
	item.Data = append(json.RawMessage(nil), rec.item.Data...)
	return &item
}

func decodeObject(b json.RawMessage) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	out := make(map[string]any)
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
