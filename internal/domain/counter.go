package domain

import (
	"context"
	"time"
)

// Counter defines the interface (port) for windowed counters.
// Implementations of this interface are adapters (e.g., RedisCounterAdapter).
type Counter interface {
	// IncrWithExpiry increments key and returns the new count. The first
	// increment starts a window of the given length; the key vanishes when
	// the window ends.
	IncrWithExpiry(ctx context.Context, key string, window time.Duration) (int64, error)

	// TTL returns how long the current window of key has left.
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Ping checks the health of the counter store.
	Ping(ctx context.Context) error
}
