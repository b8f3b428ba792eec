package cache

import (
	"context"
	"testing"
	"time"

	"trustcms/internal/domain/content"
	"trustcms/internal/form"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*ListCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewListCache(rdb, time.Minute), mr
}

func keyFor(t *testing.T, c *ListCache, kind content.Kind, q form.Pagination) string {
	t.Helper()
	_, key, _, err := c.Get(context.Background(), kind, q)
	require.NoError(t, err)
	return key
}

func TestListCache_SetGet(t *testing.T) {
	t.Run("Should return a stored page", func(t *testing.T) {
		c, _ := newTestCache(t)
		ctx := context.Background()
		q := form.Pagination{Page: 1, Limit: 10}

		_, key, ok, err := c.Get(ctx, content.KindPatron, q)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, c.Set(ctx, key, []byte(`{"items":[]}`)))
		b, _, ok, err := c.Get(ctx, content.KindPatron, q)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"items":[]}`, string(b))
	})

	t.Run("Should key pages by query and kind", func(t *testing.T) {
		c, _ := newTestCache(t)
		ctx := context.Background()
		active := true
		q := form.Pagination{Page: 1, Limit: 10}
		filtered := form.Pagination{Page: 1, Limit: 10, Active: &active}

		require.NoError(t, c.Set(ctx, keyFor(t, c, content.KindPatron, q), []byte("all")))

		_, _, ok, err := c.Get(ctx, content.KindPatron, filtered)
		require.NoError(t, err)
		assert.False(t, ok)
		_, _, ok, err = c.Get(ctx, content.KindTrustee, q)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should expire pages after the ttl", func(t *testing.T) {
		c, mr := newTestCache(t)
		ctx := context.Background()
		q := form.Pagination{Page: 1, Limit: 10}

		require.NoError(t, c.Set(ctx, keyFor(t, c, content.KindMedia, q), []byte("x")))
		mr.FastForward(2 * time.Minute)

		_, _, ok, err := c.Get(ctx, content.KindMedia, q)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestListCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	q := form.Pagination{Page: 2, Limit: 5}

	require.NoError(t, c.Set(ctx, keyFor(t, c, content.KindGallery, q), []byte("old")))
	require.NoError(t, c.Set(ctx, keyFor(t, c, content.KindPaper, q), []byte("paper")))
	require.NoError(t, c.Invalidate(ctx, content.KindGallery))

	_, _, ok, err := c.Get(ctx, content.KindGallery, q)
	require.NoError(t, err)
	assert.False(t, ok)

	b, _, ok, err := c.Get(ctx, content.KindPaper, q)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "paper", string(b))
}

func TestListCache_Unavailable(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	_, _, _, err := c.Get(context.Background(), content.KindTeam, form.Pagination{Page: 1, Limit: 10})
	assert.Error(t, err)
}

func TestListCache_KeyFromBeforeInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	q := form.Pagination{Page: 1, Limit: 10}

	stale := keyFor(t, c, content.KindTeam, q)
	require.NoError(t, c.Invalidate(ctx, content.KindTeam))
	require.NoError(t, c.Set(ctx, stale, []byte("stale")))

	_, key, ok, err := c.Get(ctx, content.KindTeam, q)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NotEqual(t, stale, key)
}
