package cache

import (
	"context"
	"errors"
	"time"
)

// Cache is the key/value backend for session-scoped shell state and CSRF tokens.
type Cache interface {
	// Get retrieves a value. Missing keys return ErrCacheNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with optional TTL (0 = DefaultTTL)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists
	Exists(ctx context.Context, key string) (bool, error)

	// Ping checks if the cache is reachable
	Ping(ctx context.Context) error

	// Close releases the backend
	Close() error
}

// Config holds common cache configuration
type Config struct {
	// Default TTL for entries stored with ttl 0 (negative = no expiration)
	DefaultTTL time.Duration

	// Key prefix for all cache keys
	Prefix string

	// Enable/disable cache (useful for testing)
	Enabled bool
}

// DefaultConfig returns a default cache configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultTTL: 24 * time.Hour,
		Prefix:     "legal_dashboard:",
		Enabled:    true,
	}
}

// CacheError represents a cache operation error
type CacheError struct {
	Op  string // Operation that failed
	Key string // Cache key involved
	Err error  // Underlying error
}

func (e *CacheError) Error() string {
	if e.Key != "" {
		return "cache " + e.Op + " " + e.Key + " failed: " + e.Err.Error()
	}
	return "cache " + e.Op + " failed: " + e.Err.Error()
}

func (e *CacheError) Unwrap() error {
	return e.Err
}

// Common cache errors
var (
	ErrCacheNotFound    = &CacheError{Op: "get", Err: errKeyNotFound}
	ErrCacheUnavailable = &CacheError{Op: "connection", Err: errUnavailable}
	ErrCacheDisabled    = &CacheError{Op: "operation", Err: errDisabled}
)

var (
	errKeyNotFound = customError("key not found")
	errUnavailable = customError("cache unavailable")
	errDisabled    = customError("cache disabled")
)

type customError string

func (e customError) Error() string {
	return string(e)
}

// IsNotFound reports whether err is a cache miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCacheNotFound)
}
