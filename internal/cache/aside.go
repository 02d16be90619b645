package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"blogify/internal/observability"
)

// Aside implements the cache-aside pattern. On a hit the cached JSON is
// unmarshaled into dest; on a miss fetch is called to fill dest and the
// result is stored with the given TTL. With no Redis client the fetch runs
// directly.
//
// Only single-entity reads go through here. Feed and visibility results are
// never cached: they depend on the live block graph and must be recomputed
// per request.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	entity := keyEntity(key)

	if val, err := client.Get(ctx, key).Result(); err == nil {
		if jsonErr := json.Unmarshal([]byte(val), dest); jsonErr == nil {
			observability.CacheHits.WithLabelValues(entity).Inc()
			return nil
		}
		// Corrupt entry; drop it and fall through to the fetch.
		client.Del(ctx, key)
	}

	observability.CacheMisses.WithLabelValues(entity).Inc()

	if err := fetch(); err != nil {
		return err
	}

	if data, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, data, ttl)
	}
	return nil
}

// keyEntity extracts the entity label from a cache key ("user:42" -> "user").
func keyEntity(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
