package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter bounds request counts per caller key over a fixed window.
// Backs the anonymous submission endpoints.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type redisRateLimiter struct {
	client *redis.Client
}

// NewRateLimiter instantiates the Redis-backed limiter.
func NewRateLimiter(client *redis.Client) RateLimiter {
	return &redisRateLimiter{client: client}
}

// Allow increments the window counter and reports whether the caller is
// still inside the limit. The counter expires with the window, so a key
// that goes quiet resets on its own.
func (l *redisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}
