package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:user:"

// RateLimitResult reports the outcome of a rate limit check
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// RateLimiter applies a fixed-window per-user request limit backed by
// Redis, so the limit holds across stateless instances.
type RateLimiter struct {
	client            *Client
	requestsPerMinute int
	burst             int
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *Client, requestsPerMinute, burst int) *RateLimiter {
	return &RateLimiter{
		client:            client,
		requestsPerMinute: requestsPerMinute,
		burst:             burst,
	}
}

// Allow counts a request against the user's current window
func (r *RateLimiter) Allow(ctx context.Context, userID string) (RateLimitResult, error) {
	key := fmt.Sprintf("%s%s", rateLimitPrefix, userID)
	windowEnd := time.Now().Truncate(time.Minute).Add(time.Minute)

	pipe := r.client.rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, time.Minute)

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return RateLimitResult{}, fmt.Errorf("failed to execute rate limit check: %w", err)
	}

	count := incrCmd.Val()
	limit := int64(r.requestsPerMinute + r.burst)
	remaining := int(limit - count)
	if remaining < 0 {
		remaining = 0
	}

	return RateLimitResult{
		Allowed:   count <= limit,
		Remaining: remaining,
		ResetAt:   windowEnd,
	}, nil
}

// Reset clears the user's current window
func (r *RateLimiter) Reset(ctx context.Context, userID string) error {
	key := fmt.Sprintf("%s%s", rateLimitPrefix, userID)
	return r.client.rdb.Del(ctx, key).Err()
}
