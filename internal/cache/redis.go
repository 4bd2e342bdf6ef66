package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bobmcallan/vantage/internal/common"
	"github.com/bobmcallan/vantage/internal/interfaces"
)

// RedisKeyPrefix namespaces every key written by Vantage
const RedisKeyPrefix = "vantage:"

// RedisCache stores responses in Redis so they are shared across instances.
type RedisCache struct {
	rdb    redis.Cmdable
	closer func() error
	logger *common.Logger
}

var _ interfaces.ResponseCache = (*RedisCache)(nil)

// NewRedisCache connects to the Redis server at url and verifies it with PING.
func NewRedisCache(url string, logger *common.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.DialTimeout = 5 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisCache{rdb: client, closer: client.Close, logger: logger}, nil
}

// NewRedisCacheFromClient wraps an existing client; Close is left to the caller.
func NewRedisCacheFromClient(rdb redis.Cmdable, logger *common.Logger) *RedisCache {
	return &RedisCache{rdb: rdb, closer: func() error { return nil }, logger: logger}
}

// Get returns the cached value; redis.Nil is a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.rdb.Get(ctx, RedisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

// Set stores value with the given TTL (SET key val EX ttl).
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, RedisKeyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close closes the underlying client when this cache created it
func (c *RedisCache) Close() error {
	return c.closer()
}
