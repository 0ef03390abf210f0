// internal/pkg/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window counter backed by Redis INCR/EXPIRE.
type Limiter struct {
	client *redis.Client
}

func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

// Allow increments the counter for scope+key and reports whether the
// request fits inside the window.
func (l *Limiter) Allow(ctx context.Context, scope, key string, max int64, window time.Duration) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s:%s", scope, key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	// Set expiration on first hit
	if count == 1 {
		l.client.Expire(ctx, redisKey, window)
	}

	return count <= max, nil
}

// Reset clears the counter for scope+key.
func (l *Limiter) Reset(ctx context.Context, scope, key string) error {
	return l.client.Del(ctx, fmt.Sprintf("ratelimit:%s:%s", scope, key)).Err()
}
