package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// FallbackCache implements a cache with Redis primary and memory fallback
type FallbackCache struct {
	primary  Cache
	fallback Cache
	logger   *slog.Logger
}

// FallbackConfig holds fallback cache configuration
type FallbackConfig struct {
	// Redis configuration; nil or empty Addr runs memory only
	Redis *RedisConfig

	// Memory cache configuration
	Memory *Config

	// Logger for structured logging
	Logger *slog.Logger
}

// DefaultFallbackConfig returns a default fallback configuration
func DefaultFallbackConfig() *FallbackConfig {
	return &FallbackConfig{
		Redis:  DefaultRedisConfig(),
		Memory: DefaultConfig(),
	}
}

// NewFallbackCache creates a new fallback cache. An unreachable Redis is not an error:
// the cache runs on memory alone.
func NewFallbackCache(config *FallbackConfig) *FallbackCache {
	if config == nil {
		config = DefaultFallbackConfig()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var primary Cache
	if config.Redis != nil && config.Redis.Addr != "" {
		if config.Redis.Logger == nil {
			config.Redis.Logger = logger
		}
		redisCache, err := NewRedisCache(config.Redis)
		if err != nil {
			logger.Warn("redis cache unavailable, using memory cache only", "error", err)
		} else {
			primary = redisCache
			logger.Info("fallback cache initialized with redis primary")
		}
	} else {
		logger.Info("redis not configured, using memory cache only")
	}

	return NewFallbackCacheWith(primary, NewMemoryCache(config.Memory), logger)
}

// NewFallbackCacheWith combines an existing primary (may be nil) and fallback.
func NewFallbackCacheWith(primary, fallback Cache, logger *slog.Logger) *FallbackCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackCache{primary: primary, fallback: fallback, logger: logger}
}

// HasPrimary reports whether a primary backend is attached
func (fc *FallbackCache) HasPrimary() bool {
	return fc.primary != nil
}

// Get retrieves a value from cache (primary first, then fallback)
func (fc *FallbackCache) Get(ctx context.Context, key string) ([]byte, error) {
	if fc.primary != nil {
		value, err := fc.primary.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if !IsNotFound(err) {
			fc.logger.Warn("primary cache get failed, trying fallback", "error", err, "key", key)
		}
	}

	return fc.fallback.Get(ctx, key)
}

// Set stores a value in both caches. A primary failure is logged and reported only when
// the fallback also fails.
func (fc *FallbackCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var primaryErr error

	if fc.primary != nil {
		primaryErr = fc.primary.Set(ctx, key, value, ttl)
		if primaryErr != nil {
			fc.logger.Warn("primary cache set failed", "error", primaryErr, "key", key)
		}
	}

	if err := fc.fallback.Set(ctx, key, value, ttl); err != nil {
		fc.logger.Error("fallback cache set failed", "error", err, "key", key)
		return errors.Join(primaryErr, err)
	}

	return nil
}

// Delete removes a value from both caches
func (fc *FallbackCache) Delete(ctx context.Context, key string) error {
	var primaryErr error
	if fc.primary != nil {
		primaryErr = fc.primary.Delete(ctx, key)
	}
	return errors.Join(primaryErr, fc.fallback.Delete(ctx, key))
}

// Exists checks either cache
func (fc *FallbackCache) Exists(ctx context.Context, key string) (bool, error) {
	if fc.primary != nil {
		if ok, err := fc.primary.Exists(ctx, key); err == nil && ok {
			return true, nil
		}
	}
	return fc.fallback.Exists(ctx, key)
}

// Ping reports the primary's health when one is attached
func (fc *FallbackCache) Ping(ctx context.Context) error {
	if fc.primary != nil {
		return fc.primary.Ping(ctx)
	}
	return fc.fallback.Ping(ctx)
}

// Close closes both caches
func (fc *FallbackCache) Close() error {
	var primaryErr error
	if fc.primary != nil {
		primaryErr = fc.primary.Close()
	}
	return errors.Join(primaryErr, fc.fallback.Close())
}
