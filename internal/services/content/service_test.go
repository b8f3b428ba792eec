package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"trustcms/internal/domain/content"
	"trustcms/internal/form"
	"trustcms/internal/metrics"
	"trustcms/internal/store/cache"
	"trustcms/internal/store/memory"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *memory.ContentRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repo := memory.NewContentRepository()
	return NewService(repo, cache.NewListCache(rdb, time.Minute), metrics.New()), repo
}

func TestService_Create(t *testing.T) {
	t.Run("Should store the typed payload", func(t *testing.T) {
		svc, _ := newTestService(t)
		ctx := context.Background()

		in := form.Values{"year": int64(2023), "active": false, "title": "Gallery A", "unknownField": "x"}
		item, err := svc.Create(ctx, content.KindGallery, in)
		require.NoError(t, err)
		assert.Equal(t, content.KindGallery, item.Kind)
		assert.JSONEq(t, `{"year":2023,"active":false,"title":"Gallery A"}`, string(item.Data))
	})

	t.Run("Should reject with every violation", func(t *testing.T) {
		svc, repo := newTestService(t)
		ctx := context.Background()

		_, err := svc.Create(ctx, content.KindTeam, form.Values{"order": int64(-1), "active": "maybe"})
		var verr *form.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"order", "active"}, verr.Fields())

		_, total, err := repo.List(ctx, content.KindTeam, form.Pagination{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("Should refuse unknown kinds", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Create(context.Background(), content.Kind("sponsor"), form.Values{})
		var serr *ServiceError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "lookup", serr.Op)
	})
}

func TestService_Update(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, content.KindTrustee, form.Values{"title": "Chair", "order": int64(1)})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, content.KindTrustee, item.ID, form.Values{"active": true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Chair","order":1,"active":true}`, string(updated.Data))

	_, err = svc.Update(ctx, content.KindTrustee, 999, form.Values{"active": true})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.Update(ctx, content.KindTrustee, item.ID, form.Values{"order": int64(-5)})
	var verr *form.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestService_GetDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, content.KindMedia, form.Values{"title": "Interview"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, content.KindMedia, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)

	_, err = svc.Get(ctx, content.KindPaper, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, content.KindMedia, item.ID))
	assert.ErrorIs(t, svc.Delete(ctx, content.KindMedia, item.ID), ErrNotFound)
}

func TestService_ListCache(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	q := form.Pagination{Page: 1, Limit: 10}

	_, err := svc.Create(ctx, content.KindPatron, form.Values{"title": "First"})
	require.NoError(t, err)

	first, err := svc.List(ctx, content.KindPatron, q)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Total)

	// Written behind the service's back, so the cached page is served.
	_, err = repo.Create(ctx, content.KindPatron, []byte(`{"title":"Hidden"}`))
	require.NoError(t, err)
	cached, err := svc.List(ctx, content.KindPatron, q)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached.Total)

	_, err = svc.Create(ctx, content.KindPatron, form.Values{"title": "Third"})
	require.NoError(t, err)
	fresh, err := svc.List(ctx, content.KindPatron, q)
	require.NoError(t, err)
	assert.Equal(t, int64(3), fresh.Total)
	assert.Len(t, fresh.Items, 3)
}

func TestService_WithoutCache(t *testing.T) {
	svc := NewService(memory.NewContentRepository(), nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, content.KindPaper, form.Values{"publicationYear": int64(2019)})
	require.NoError(t, err)

	resp, err := svc.List(ctx, content.KindPaper, form.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
}

// racingRepo lets a write land after the repository read of a List but
// before the page is cached.
type racingRepo struct {
	*memory.ContentRepository
	afterList func()
}

func (r *racingRepo) List(ctx context.Context, kind content.Kind, q form.Pagination) ([]*content.Item, int64, error) {
	items, total, err := r.ContentRepository.List(ctx, kind, q)
	if r.afterList != nil {
		hook := r.afterList
		r.afterList = nil
		hook()
	}
	return items, total, err
}

func TestService_ListCacheWriteDuringRead(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repo := &racingRepo{ContentRepository: memory.NewContentRepository()}
	svc := NewService(repo, cache.NewListCache(rdb, time.Minute), nil)
	ctx := context.Background()
	q := form.Pagination{Page: 1, Limit: 10}

	repo.afterList = func() {
		_, err := svc.Create(ctx, content.KindGallery, form.Values{"title": "Late"})
		require.NoError(t, err)
	}

	first, err := svc.List(ctx, content.KindGallery, q)
	require.NoError(t, err)
	assert.Zero(t, first.Total)

	second, err := svc.List(ctx, content.KindGallery, q)
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.Total)
}
