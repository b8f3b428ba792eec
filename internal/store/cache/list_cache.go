package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"trustcms/internal/domain/content"
	"trustcms/internal/form"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "trustcms"

// ListCache keeps encoded list pages in Redis. Each kind has a generation
// counter that is part of every page key; bumping it on writes orphans the
// old pages, which then expire through their TTL.
type ListCache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// NewListCache creates a Redis-backed list cache.
func NewListCache(rdb redis.UniversalClient, ttl time.Duration) *ListCache {
	return &ListCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached page for q along with its key. The key embeds the
// kind's generation as of this call.
func (c *ListCache) Get(ctx context.Context, kind content.Kind, q form.Pagination) ([]byte, string, bool, error) {
	key, err := c.pageKey(ctx, kind, q)
	if err != nil {
		return nil, "", false, err
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, key, false, nil
	}
	if err != nil {
		return nil, key, false, fmt.Errorf("cache get: %w", err)
	}
	return b, key, true, nil
}

// Set stores page under a key returned by Get.
func (c *ListCache) Set(ctx context.Context, key string, page []byte) error {
	if err := c.rdb.Set(ctx, key, page, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *ListCache) Invalidate(ctx context.Context, kind content.Kind) error {
	if err := c.rdb.Incr(ctx, genKey(kind)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (c *ListCache) pageKey(ctx context.Context, kind content.Kind, q form.Pagination) (string, error) {
	gen, err := c.rdb.Get(ctx, genKey(kind)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("cache generation: %w", err)
	}
	return fmt.Sprintf("%s:list:%s:%d:%s", keyPrefix, kind, gen, queryHash(q)), nil
}

func genKey(kind content.Kind) string {
	return keyPrefix + ":gen:" + string(kind)
}

// queryHash identifies a pagination query; nil and empty filters differ.
func queryHash(q form.Pagination) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%d|", q.Page, q.Limit)
	if q.Active != nil {
		h.Write([]byte(strconv.FormatBool(*q.Active)))
	}
	h.Write([]byte{'|'})
	if q.Search != nil {
		h.Write([]byte{'s'})
		h.Write([]byte(*q.Search))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
