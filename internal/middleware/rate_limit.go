package middleware

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/moicalder/moimac.com/internal/cache"
	"github.com/moicalder/moimac.com/internal/domain"
	"github.com/moicalder/moimac.com/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter decides whether the client behind key may proceed. retryAfter
// is only meaningful when allowed is false.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// CounterLimiter is a fixed-window limiter over a shared domain.Counter, so
// every API instance sees the same budget.
type CounterLimiter struct {
	counter domain.Counter
	limit   int64
	window  time.Duration
}

func NewCounterLimiter(counter domain.Counter, requests int, window time.Duration) *CounterLimiter {
	return &CounterLimiter{counter: counter, limit: int64(requests), window: window}
}

func (l *CounterLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := cache.GenerateCacheKey("ratelimit", "session", key)
	count, err := l.counter.IncrWithExpiry(ctx, redisKey, l.window)
	if err != nil {
		return true, 0, err
	}
	if count <= l.limit {
		return true, 0, nil
	}
	ttl, err := l.counter.TTL(ctx, redisKey)
	if err != nil || ttl <= 0 {
		ttl = l.window
	}
	return false, ttl, nil
}

const localLimiterSweepSize = 10000

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter keeps one token bucket per key in process memory. It is used
// when no Redis is configured.
type LocalLimiter struct {
	mu      sync.Mutex
	entries map[string]*localEntry
	every   rate.Limit
	burst   int
	idle    time.Duration
	now     func() time.Time
}

func NewLocalLimiter(requests int, window time.Duration) *LocalLimiter {
	if requests < 1 {
		requests = 1
	}
	return &LocalLimiter{
		entries: make(map[string]*localEntry),
		every:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
		idle:    window,
		now:     time.Now,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.entries) >= localLimiterSweepSize {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) > l.idle {
				delete(l.entries, k)
			}
		}
	}

	e, ok := l.entries[key]
	if !ok {
		e = &localEntry{limiter: rate.NewLimiter(l.every, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now

	r := e.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay, nil
	}
	return true, 0, nil
}

// RateLimit applies limiter per client: the identity header when present,
// else the remote IP. Limiter failures are logged and the request proceeds.
func RateLimit(limiter RateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := UserIDFromCtx(c)
		if key == "" {
			key = c.IP()
		}

		allowed, retryAfter, err := limiter.Allow(c.UserContext(), key)
		if err != nil {
			logger.Get().Warn("Rate limiter unavailable, allowing request",
				zap.String("key", key),
				zap.Error(err),
			)
			return c.Next()
		}
		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			return domain.NewRateLimitedError().WithContext("retry_after", seconds)
		}
		return c.Next()
	}
}
