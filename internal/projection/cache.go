package projection

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/zentharo/request-service/internal/domain"
)

// Cache persists the last-known-good request list for offline fallback.
// The cached copy is display-only and is fully replaced by the
// authoritative list on the next successful fetch; divergent edits are
// never merged.
type Cache interface {
	Store(ctx context.Context, requests []domain.Request) error
	Load(ctx context.Context) ([]domain.Request, error)
}

// RedisCache keeps the serialized list in a single durable key.
type RedisCache struct {
	client *redis.Client
	key    string
}

// NewRedisCache builds a cache around an existing client.
func NewRedisCache(client *redis.Client, key string) *RedisCache {
	if key == "" {
		key = "zentharoRequests"
	}
	return &RedisCache{client: client, key: key}
}

// Store overwrites the cached list.
func (c *RedisCache) Store(ctx context.Context, requests []domain.Request) error {
	payload, err := json.Marshal(requests)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, payload, 0).Err()
}

// Load returns the cached list, or an empty slice when nothing was cached.
func (c *RedisCache) Load(ctx context.Context) ([]domain.Request, error) {
	payload, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.Request{}, nil
		}
		return nil, err
	}
	var requests []domain.Request
	if err := json.Unmarshal(payload, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}
