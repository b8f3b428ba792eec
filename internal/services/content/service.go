package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"trustcms/internal/domain/content"
	"trustcms/internal/form"
	"trustcms/internal/metrics"
	"trustcms/internal/store/repositories"

	"github.com/rs/zerolog/log"
)

// Service validates normalized requests and persists content
type Service struct {
	repo    repositories.ContentRepository
	cache   repositories.ListCache
	metrics *metrics.Metrics
}

// NewService creates a new content service. cache may be nil.
func NewService(repo repositories.ContentRepository, cache repositories.ListCache, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		metrics: m,
	}
}

// Create validates a normalized request and stores it as a new record
func (s *Service) Create(ctx context.Context, kind content.Kind, in form.Values) (*content.Item, error) {
	def, payload, err := s.accept(kind, in)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.Create(ctx, def.Kind, payload)
	if err != nil {
		return nil, &ServiceError{Op: "create_" + string(kind), Err: err}
	}
	s.invalidate(ctx, kind)
	return item, nil
}

// Update validates a normalized request and applies the fields it carries
// to an existing record
func (s *Service) Update(ctx context.Context, kind content.Kind, id int64, in form.Values) (*content.Item, error) {
	def, payload, err := s.accept(kind, in)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.Update(ctx, def.Kind, id, payload)
	if err != nil {
		return nil, s.wrap("update_"+string(kind), err)
	}
	s.invalidate(ctx, kind)
	return item, nil
}

// Get retrieves one record
func (s *Service) Get(ctx context.Context, kind content.Kind, id int64) (*content.Item, error) {
	item, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, s.wrap("get_"+string(kind), err)
	}
	return item, nil
}

// Delete removes one record
func (s *Service) Delete(ctx context.Context, kind content.Kind, id int64) error {
	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return s.wrap("delete_"+string(kind), err)
	}
	s.invalidate(ctx, kind)
	return nil
}

// List retrieves one page of records, served from the cache when possible
func (s *Service) List(ctx context.Context, kind content.Kind, q form.Pagination) (*ListResponse, error) {
	var key string
	if s.cache != nil {
		b, k, ok, err := s.cache.Get(ctx, kind, q)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("kind", string(kind)).Msg("list cache read failed")
		case ok:
			var cached ListResponse
			if err := json.Unmarshal(b, &cached); err == nil {
				return &cached, nil
			}
			key = k
		default:
			key = k
		}
	}

	items, total, err := s.repo.List(ctx, kind, q)
	if err != nil {
		return nil, &ServiceError{Op: "list_" + string(kind), Err: err}
	}
	resp := &ListResponse{Items: items, Page: q.Page, Limit: q.Limit, Total: total}

	// key carries the generation read before the repository, so a page
	// overtaken by a write is never stored under the newer generation.
	if key != "" {
		if b, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, b); err != nil {
				log.Warn().Err(err).Str("kind", string(kind)).Msg("list cache write failed")
			}
		}
	}
	return resp, nil
}

// accept runs the validation contract of kind over a normalized request
// and returns the typed payload to store.
func (s *Service) accept(kind content.Kind, in form.Values) (content.Definition, json.RawMessage, error) {
	def, ok := content.Lookup(kind)
	if !ok {
		return content.Definition{}, nil, &ServiceError{Op: "lookup", Err: fmt.Errorf("unknown content kind %q", kind)}
	}

	res := form.Validate(def.Contract, in)
	if err := res.Err(def.Contract.Entity); err != nil {
		s.metrics.ObserveRejection(def.Contract.Entity, res.Violations)
		log.Debug().Str("kind", string(kind)).Int("violations", len(res.Violations)).Msg("request rejected")
		return def, nil, err
	}

	payload, err := def.Payload(res.Values)
	if err != nil {
		return def, nil, &ServiceError{Op: "encode_" + string(kind), Err: err}
	}
	return def, payload, nil
}

func (s *Service) wrap(op string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return &ServiceError{Op: op, Err: err}
}

func (s *Service) invalidate(ctx context.Context, kind content.Kind) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, kind); err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("list cache invalidation failed")
	}
}
