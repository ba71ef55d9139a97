// cache.go — Redis caching for catalog lists. TMDB certification lookups make
// list fetches expensive (one extra request per item), so popular lists are
// cached for a generous TTL.
package tmdb

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/blackgoldstudios/animax/internal/content"
)

// DefaultCacheTTL is how long cached catalog lists stay fresh.
const DefaultCacheTTL = 30 * time.Minute

// Cache wraps a go-redis client for JSON blobs under animax:catalog:* keys.
// A nil *Cache is valid and misses every lookup.
type Cache struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewCache creates a Cache. rdb may be nil (caching disabled).
func NewCache(rdb *goredis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func cacheKey(suffix string) string {
	return "animax:catalog:" + suffix
}

// GetItems returns the cached list for key, or ok=false on miss or any
// Redis/decode error. Cache failures never surface to callers.
func (c *Cache) GetItems(ctx context.Context, key string) ([]content.Item, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, cacheKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	var items []content.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

// SetItems stores a list under key with the configured TTL. Errors are
// dropped: a failed cache write just means a refetch later.
func (c *Cache) SetItems(ctx context.Context, key string, items []content.Item) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, cacheKey(key), raw, c.ttl)
}
