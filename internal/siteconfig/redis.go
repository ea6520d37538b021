package siteconfig

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/cortejtech/agency-admin/internal/config"
)

// CacheKey is the redis key of the cached settings.
const CacheKey = "agency-admin:site-settings"

// RedisCache stores the effective settings as JSON in redis.
// Redis failures are logged and treated as cache misses.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache returns a cache expiring entries after ttl; 0 keeps them until invalidated.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context) (Settings, bool) {
	raw, err := c.client.Get(ctx, CacheKey).Bytes()
	if err != nil {
		if err != redis.Nil { //nolint:errorlint
			log.Warn().Err(err).Msg("settings cache read failed")
		}

		return Settings{}, false
	}

	var s Settings
	if err = json.Unmarshal(raw, &s); err != nil {
		log.Warn().Err(err).Msg("settings cache holds invalid data")
		return Settings{}, false
	}

	return s, true
}

// Put implements Cache.
func (c *RedisCache) Put(ctx context.Context, s Settings) {
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}

	if err = c.client.Set(ctx, CacheKey, raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("settings cache write failed")
	}
}

// Invalidate implements Cache.
func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, CacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("settings cache invalidation failed")
	}
}

// NewRedisClient connects to redis and checks the connection.
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "redis %s", cfg.Addr)
	}

	log.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("settings cache connected")

	return client, nil
}

// CacheFromConfig returns the redis cache when it is enabled and reachable, else nil.
func CacheFromConfig(ctx context.Context, cfg config.Redis) Cache {
	if !cfg.Enabled {
		return nil
	}

	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, site settings are not cached")
		return nil
	}

	return NewRedisCache(client, cfg.TTL)
}
