package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"legal_dashboard/internal/cache"
)

// RateLimitConfig holds configuration for the token bucket rate limiting middleware
type RateLimitConfig struct {
	// Cache stores bucket state so limits hold across instances sharing Redis
	Cache cache.Cache

	// Logger for structured logging (optional, uses slog.Default if nil)
	Logger *slog.Logger

	// Capacity is the maximum number of tokens in the bucket
	// Default: 30
	Capacity int

	// RefillRate is the number of tokens added per second
	// Default: 2.0
	RefillRate float64

	// KeyGenerator generates the key for rate limiting
	// Default: session id, falling back to client IP
	KeyGenerator func(r *http.Request) string

	// Skipper defines a function to skip middleware
	Skipper func(r *http.Request) bool
}

// TokenBucket represents a token bucket state
type TokenBucket struct {
	Tokens     float64   `json:"tokens"`
	LastRefill time.Time `json:"last_refill"`
}

// CacheTokenBucketStore keeps token buckets in a cache.Cache.
type CacheTokenBucketStore struct {
	cache     cache.Cache
	keyPrefix string

	// Serializes read-modify-write within this process.
	mu sync.Mutex
}

// NewCacheTokenBucketStore creates a new cache token bucket store
func NewCacheTokenBucketStore(c cache.Cache, keyPrefix string) *CacheTokenBucketStore {
	if keyPrefix == "" {
		keyPrefix = "rate_limit:"
	}
	return &CacheTokenBucketStore{
		cache:     c,
		keyPrefix: keyPrefix,
	}
}

// Allow takes one token from the bucket for key. It reports whether the
// request may proceed, the tokens left, and how long to wait otherwise.
func (s *CacheTokenBucketStore) Allow(ctx context.Context, key string, capacity int, refillRate float64) (bool, int, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fullKey := s.keyPrefix + key
	now := time.Now()

	bucket := &TokenBucket{Tokens: float64(capacity), LastRefill: now}

	data, err := s.cache.Get(ctx, fullKey)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, bucket); err != nil {
			return false, 0, 0, fmt.Errorf("failed to unmarshal bucket: %w", err)
		}
	case !errors.Is(err, cache.ErrCacheNotFound):
		return false, 0, 0, fmt.Errorf("failed to load bucket: %w", err)
	}

	elapsed := now.Sub(bucket.LastRefill).Seconds()
	bucket.Tokens = math.Min(float64(capacity), bucket.Tokens+elapsed*refillRate)
	bucket.LastRefill = now

	allowed := bucket.Tokens >= 1.0
	var retryAfter time.Duration
	if allowed {
		bucket.Tokens -= 1.0
	} else {
		retryAfter = time.Duration((1.0 - bucket.Tokens) / refillRate * float64(time.Second))
	}

	// Keep the key for twice the time a full refill takes.
	ttl := time.Duration(float64(capacity) / refillRate * 2 * float64(time.Second))
	if ttl < time.Minute {
		ttl = time.Minute
	}

	bucketData, err := json.Marshal(bucket)
	if err != nil {
		return false, 0, 0, fmt.Errorf("failed to marshal bucket: %w", err)
	}
	if err := s.cache.Set(ctx, fullKey, bucketData, ttl); err != nil {
		return false, 0, 0, fmt.Errorf("failed to save bucket: %w", err)
	}

	return allowed, int(bucket.Tokens), retryAfter, nil
}

// Reset resets the bucket for a key
func (s *CacheTokenBucketStore) Reset(ctx context.Context, key string) error {
	return s.cache.Delete(ctx, s.keyPrefix+key)
}

// DefaultRateLimitConfig returns a default token bucket rate limit configuration
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		Capacity:     30,
		RefillRate:   2.0,
		KeyGenerator: defaultKeyGenerator,
	}
}

// defaultKeyGenerator keys the bucket by session, or by client IP before a session exists.
func defaultKeyGenerator(r *http.Request) string {
	if id := SessionID(r.Context()); id != "" {
		return "session:" + id
	}
	return "ip:" + clientIP(r)
}

// RateLimit returns a token bucket rate limiting middleware. A store error
// lets the request through; throttling is not worth failing a toggle over.
func RateLimit(config *RateLimitConfig) func(next http.Handler) http.Handler {
	if config == nil {
		config = DefaultRateLimitConfig()
	}
	if config.Cache == nil {
		config.Cache = cache.NewMemoryCache(cache.DefaultConfig())
	}
	if config.KeyGenerator == nil {
		config.KeyGenerator = defaultKeyGenerator
	}
	if config.Capacity <= 0 {
		config.Capacity = 30
	}
	if config.RefillRate <= 0 {
		config.RefillRate = 2.0
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store := NewCacheTokenBucketStore(config.Cache, "rate_limit:")

	logger.Debug("rate limiter middleware initialized",
		"capacity", config.Capacity,
		"refill_rate", config.RefillRate,
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.Skipper != nil && config.Skipper(r) {
				next.ServeHTTP(w, r)
				return
			}

			key := config.KeyGenerator(r)

			allowed, remaining, retryAfter, err := store.Allow(r.Context(), key, config.Capacity, config.RefillRate)
			if err != nil {
				logger.Error("rate limiter store error", "path", r.URL.Path, "key", key, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Capacity))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				seconds := int(retryAfter.Seconds()) + 1
				logger.Warn("rate limit exceeded",
					"method", r.Method,
					"path", r.URL.Path,
					"key", key,
					"retry_after_seconds", seconds,
				)
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				http.Error(w, "Too many requests, slow down.", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
