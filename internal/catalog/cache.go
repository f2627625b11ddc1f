package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Cache stores catalog read models as JSON blobs in Redis. Entries expire on
// their own; writes to the catalog do not invalidate eagerly.
type Cache struct {
	R   *redis.Client
	TTL time.Duration
}

// Get unmarshals a cached payload into dst and reports whether the key existed.
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil || c.R == nil || key == "" {
		return false, nil
	}
	data, err := c.R.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Put serialises v as JSON under the key with the configured TTL. A nil cache
// is a no-op so callers never need to branch.
func (c *Cache) Put(ctx context.Context, key string, v any) error {
	if c == nil || c.R == nil || key == "" {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.R.Set(ctx, key, data, c.TTL).Err()
}
