// Package cache implements the per-user read cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
)

const keyPrefix = "fms:user:"

// redisCache stores JSON read models under fms:user:<id>:<key>.
type redisCache struct {
	client *redis.Client
}

// NewRedisCache creates a read cache backed by Redis.
func NewRedisCache(client *redis.Client) adapter.ReadCache {
	return &redisCache{client: client}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url, password string, db int) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func userKey(userID uuid.UUID, key string) string {
	return keyPrefix + userID.String() + ":" + key
}

// Get decodes the cached value into dest.
func (c *redisCache) Get(ctx context.Context, userID uuid.UUID, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, userKey(userID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached value: %w", err)
	}
	return true, nil
}

// Set stores value as JSON with the given TTL.
func (c *redisCache) Set(ctx context.Context, userID uuid.UUID, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	return c.client.Set(ctx, userKey(userID, key), data, ttl).Err()
}

// InvalidateUser deletes every key of the user.
func (c *redisCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	iter := c.client.Scan(ctx, 0, userKey(userID, "*"), 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// noopCache never stores anything.
type noopCache struct{}

// NewNoopCache returns a cache that always misses. It is used when Redis is not configured.
func NewNoopCache() adapter.ReadCache {
	return noopCache{}
}

func (noopCache) Get(context.Context, uuid.UUID, string, any) (bool, error) { return false, nil }

func (noopCache) Set(context.Context, uuid.UUID, string, any, time.Duration) error { return nil }

func (noopCache) InvalidateUser(context.Context, uuid.UUID) error { return nil }
