package settings

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/telemetry"
)

const cacheKey = "eclub:settings:bag"

// Cache keeps a JSON copy of the settings bag in Redis.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCache creates a Redis-backed bag cache.
func NewCache(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, logger: logger}
}

// Get returns the cached bag. Redis errors are logged and reported as a miss
// so callers fall back to the database.
func (c *Cache) Get(ctx context.Context) (Bag, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			telemetry.SettingsCacheLookupsTotal.WithLabelValues("miss").Inc()
		} else {
			telemetry.SettingsCacheLookupsTotal.WithLabelValues("error").Inc()
			c.logger.Warn("redis settings lookup failed, falling back to DB", "error", err)
		}
		return nil, false
	}

	var bag Bag
	if err := json.Unmarshal(raw, &bag); err != nil {
		telemetry.SettingsCacheLookupsTotal.WithLabelValues("error").Inc()
		c.logger.Warn("invalid settings cache entry", "error", err)
		return nil, false
	}
	telemetry.SettingsCacheLookupsTotal.WithLabelValues("hit").Inc()
	return bag, true
}

// Set stores bag with the configured TTL.
func (c *Cache) Set(ctx context.Context, bag Bag) {
	raw, err := json.Marshal(bag)
	if err != nil {
		c.logger.Warn("encoding settings cache entry", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("writing settings cache", "error", err)
	}
}

// Invalidate drops the cached bag.
func (c *Cache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, cacheKey).Err(); err != nil {
		c.logger.Warn("invalidating settings cache", "error", err)
	}
}
