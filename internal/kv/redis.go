package kv

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Redis implements Store on top of a go-redis client. Values are written
// without expiry; the catalog and quote counter are durable state, not cache.
type Redis struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Get reads key, mapping redis.Nil to a missing key.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if r == nil || r.client == nil {
		return nil, false, nil
	}
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set writes key without a TTL.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Set(ctx, key, value, 0).Err()
}
