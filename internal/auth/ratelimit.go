package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "eclub:login_attempts:"

// RateLimiter limits failed login attempts per client IP using Redis INCR + EXPIRE.
type RateLimiter struct {
	redis      *redis.Client
	maxAttempt int
	window     time.Duration
}

// NewRateLimiter allows maxAttempt failed attempts per IP within window.
func NewRateLimiter(rdb *redis.Client, maxAttempt int, window time.Duration) *RateLimiter {
	return &RateLimiter{redis: rdb, maxAttempt: maxAttempt, window: window}
}

func rateLimitKey(ip string) string {
	return rateLimitKeyPrefix + ip
}

// Allow reports whether ip may attempt another login and, if not, when it may retry.
func (rl *RateLimiter) Allow(ctx context.Context, ip string) (bool, time.Time, error) {
	key := rateLimitKey(ip)

	count, err := rl.redis.Get(ctx, key).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, time.Time{}, fmt.Errorf("checking rate limit: %w", err)
	}
	if count < rl.maxAttempt {
		return true, time.Time{}, nil
	}

	ttl, err := rl.redis.TTL(ctx, key).Result()
	if err != nil {
		return false, time.Time{}, fmt.Errorf("getting TTL: %w", err)
	}
	return false, time.Now().Add(ttl), nil
}

// RecordFailure counts a failed login attempt for ip.
func (rl *RateLimiter) RecordFailure(ctx context.Context, ip string) error {
	key := rateLimitKey(ip)

	pipe := rl.redis.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("recording failed login: %w", err)
	}
	return nil
}

// Reset clears the counter for ip after a successful login.
func (rl *RateLimiter) Reset(ctx context.Context, ip string) error {
	return rl.redis.Del(ctx, rateLimitKey(ip)).Err()
}
