package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/moicalder/moimac.com/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCounterAdapter implements the domain.Counter interface using a Redis client.
type RedisCounterAdapter struct {
	client *redis.Client
}

// NewRedisCounterAdapter creates a new instance of RedisCounterAdapter.
// It expects a connected *redis.Client.
func NewRedisCounterAdapter(client *redis.Client) domain.Counter {
	return &RedisCounterAdapter{client: client}
}

// IncrWithExpiry runs INCR and EXPIRE NX in one MULTI/EXEC. NX leaves a
// running window alone and gives a key that lost its expiry a new one, so a
// counter can never outlive its window for good.
func (r *RedisCounterAdapter) IncrWithExpiry(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	return incr.Val(), nil
}

// TTL returns 0 for keys without an expiry or that do not exist.
func (r *RedisCounterAdapter) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("ttl %s: %w", key, err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

// Ping checks the health of the Redis connection.
func (r *RedisCounterAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
