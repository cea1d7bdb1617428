package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aravind/rollbook/internal/pkg/logger"
)

// Cache is a Redis-backed response cache for statistics queries. Entries are
// short-lived and invalidated whenever attendance is marked for the course,
// so a cold Redis only costs latency, never correctness.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to redis with short timeouts.
func New(addr string, ttl time.Duration) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &Cache{client: client, ttl: ttl}
}

// Healthy verifies redis connectivity.
func (c *Cache) Healthy(ctx context.Context) bool {
	if c == nil || c.client == nil {
		return false
	}
	return c.client.Ping(ctx).Err() == nil
}

// GetJSON loads a cached value into dest. A miss or an unreachable Redis
// both report false.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
		return false
	}
	return true
}

// SetJSON stores a value under the key with the configured TTL. Failures are
// logged and otherwise ignored; the cache is best effort.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to encode cache entry")
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to store cache entry")
	}
}

// InvalidateCourse drops every cached statistics entry for the course.
func (c *Cache) InvalidateCourse(ctx context.Context, courseCode string) {
	pattern := "stats:" + courseCode + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn().Err(err).Str("key", iter.Val()).Msg("Failed to invalidate cache entry")
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn().Err(err).Str("course", courseCode).Msg("Cache invalidation scan failed")
	}
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
