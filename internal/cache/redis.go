// Package cache is a small JSON cache on Redis. Without an address it caches nothing.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/config"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "facultycert:"

type Cache struct {
	rdb    *goredis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewRedisCache connects and pings Redis. An empty cfg.ADDR returns a cache that always misses.
func NewRedisCache(cfg config.RedisConfig, logger *zap.SugaredLogger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if cfg.ADDR == "" {
		logger.Info("Redis address not set, verification cache disabled")
		return &Cache{logger: logger}, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.ADDR,
		Password: cfg.PASSWORD,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Infof("Redis connected at %s", cfg.ADDR)

	return &Cache{rdb: rdb, ttl: cfg.CACHE_TTL, logger: logger}, nil
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Get decodes the cached JSON into dest and reports whether the key existed.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}

	data, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// a stale shape is a miss, drop it
		c.logger.Warnf("dropping undecodable cache entry %s: %v", key, err)
		_ = c.rdb.Del(ctx, keyPrefix+key).Err()
		return false, nil
	}

	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	if !c.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	return c.rdb.Set(ctx, keyPrefix+key, data, c.ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}

	return c.rdb.Del(ctx, prefixed...).Err()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}
