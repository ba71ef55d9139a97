// redis.go — go-redis v9 backed signal store.
//
// Each namespace is a Redis list keyed animax:signals:{viewer}:{namespace},
// preserving insertion order the way the web client's local storage did.
// Toggle runs as a Lua script so concurrent toggles on the same key
// serialize inside Redis — no read-modify-write race.
package signals

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// toggleScript removes the member if present (LREM count 0), otherwise
// appends it. Returns 1 if the member is present after the call, 0 if not.
var toggleScript = goredis.NewScript(`
local removed = redis.call('LREM', KEYS[1], 0, ARGV[1])
if removed > 0 then
  return 0
end
redis.call('RPUSH', KEYS[1], ARGV[1])
return 1
`)

// RedisStore implements Store on a go-redis client.
type RedisStore struct {
	c *goredis.Client
}

// NewRedisStore creates a RedisStore from a go-redis Client.
func NewRedisStore(c *goredis.Client) *RedisStore {
	return &RedisStore{c: c}
}

func key(viewerID, namespace string) string {
	return fmt.Sprintf("animax:signals:%s:%s", viewerID, namespace)
}

// ReadIDs returns the namespace contents in insertion order. Any Redis
// error degrades to an empty list — a broken signal store must never break
// a listing page.
func (s *RedisStore) ReadIDs(ctx context.Context, viewerID, namespace string) []string {
	ids, err := s.c.LRange(ctx, key(viewerID, namespace), 0, -1).Result()
	if err != nil {
		return []string{}
	}
	return ids
}

// WriteIDs replaces the namespace contents atomically via a tx pipeline.
func (s *RedisStore) WriteIDs(ctx context.Context, viewerID, namespace string, ids []string) error {
	k := key(viewerID, namespace)
	_, err := s.c.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, k)
		if len(ids) > 0 {
			args := make([]interface{}, len(ids))
			for i, id := range ids {
				args[i] = id
			}
			pipe.RPush(ctx, k, args...)
		}
		return nil
	})
	return err
}

// Toggle flips membership of contentID in the namespace.
func (s *RedisStore) Toggle(ctx context.Context, viewerID, namespace, contentID string) (bool, error) {
	res, err := toggleScript.Run(ctx, s.c, []string{key(viewerID, namespace)}, contentID).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}
