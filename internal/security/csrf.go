package security

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"legal_dashboard/internal/cache"
	"legal_dashboard/internal/middlewares"
)

// CSRFProtection issues one token per session and checks it on state-changing requests.
// Tokens live in the cache so every instance sharing Redis accepts them.
type CSRFProtection struct {
	config *CSRFConfig
	cache  cache.Cache
	logger *slog.Logger
}

// CSRFConfig holds CSRF protection configuration
type CSRFConfig struct {
	// Cache backend for token storage
	// If nil, falls back to memory cache (not suitable for multi-server deployments)
	Cache cache.Cache

	// Token length in bytes (default: 32)
	TokenLength int

	// Token lifetime, refreshed whenever the token is read (default: 24 hours)
	TokenLifetime time.Duration

	// Header name for CSRF token
	HeaderName string

	// Form field name for CSRF token
	FieldName string

	// Key prefix for cache storage
	KeyPrefix string

	// Logger for structured logging
	Logger *slog.Logger

	// Custom error handler
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// DefaultCSRFConfig returns a default CSRF configuration
func DefaultCSRFConfig() *CSRFConfig {
	return &CSRFConfig{
		TokenLength:   32,
		TokenLifetime: 24 * time.Hour,
		HeaderName:    "X-CSRF-Token",
		FieldName:     "csrf_token",
		KeyPrefix:     "csrf:",
	}
}

// NewCSRFProtection creates a new CSRF protection instance
func NewCSRFProtection(config *CSRFConfig) *CSRFProtection {
	if config == nil {
		config = DefaultCSRFConfig()
	}
	defaults := DefaultCSRFConfig()
	if config.TokenLength <= 0 {
		config.TokenLength = defaults.TokenLength
	}
	if config.TokenLifetime <= 0 {
		config.TokenLifetime = defaults.TokenLifetime
	}
	if config.HeaderName == "" {
		config.HeaderName = defaults.HeaderName
	}
	if config.FieldName == "" {
		config.FieldName = defaults.FieldName
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = defaults.KeyPrefix
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cacheBackend := config.Cache
	if cacheBackend == nil {
		logger.Warn("CSRF using memory cache - not suitable for multi-server deployments")
		cacheBackend = cache.NewMemoryCache(&cache.Config{
			DefaultTTL: config.TokenLifetime,
			Prefix:     "",
			Enabled:    true,
		})
	}

	return &CSRFProtection{
		config: config,
		cache:  cacheBackend,
		logger: logger,
	}
}

// Token returns the session's token, creating it on first use.
func (c *CSRFProtection) Token(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrNoSession
	}

	key := c.tokenCacheKey(sessionID)

	data, err := c.cache.Get(ctx, key)
	if err == nil {
		var stored csrfTokenData
		if err := json.Unmarshal(data, &stored); err == nil && stored.Token != "" {
			return stored.Token, nil
		}
		c.logger.Warn("discarding unreadable CSRF token", "session_id", sessionID)
	} else if !errors.Is(err, cache.ErrCacheNotFound) {
		return "", fmt.Errorf("failed to load token: %w", err)
	}

	token, err := GenerateToken(c.config.TokenLength)
	if err != nil {
		return "", err
	}

	data, err = json.Marshal(&csrfTokenData{Token: token, CreatedAt: time.Now()})
	if err != nil {
		return "", fmt.Errorf("failed to marshal token data: %w", err)
	}
	if err := c.cache.Set(ctx, key, data, c.config.TokenLifetime); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return token, nil
}

// Validate checks the token submitted with r against the session's token.
func (c *CSRFProtection) Validate(r *http.Request) error {
	sessionID := middlewares.SessionID(r.Context())
	if sessionID == "" {
		return ErrNoSession
	}

	submitted := c.getRequestToken(r)
	if submitted == "" {
		return ErrInvalidToken
	}

	data, err := c.cache.Get(r.Context(), c.tokenCacheKey(sessionID))
	if err != nil {
		return ErrInvalidToken
	}

	var stored csrfTokenData
	if err := json.Unmarshal(data, &stored); err != nil {
		return ErrInvalidToken
	}

	if !SecureCompare(submitted, stored.Token) {
		return ErrInvalidToken
	}
	return nil
}

// Middleware rejects unsafe requests whose token does not match with 403.
// Safe requests pass through untouched; handlers that render forms ask for
// the token with Token.
func (c *CSRFProtection) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
			next.ServeHTTP(w, r)
			return
		}

		if err := c.Validate(r); err != nil {
			c.logger.Warn("CSRF validation failed",
				"error", err,
				"method", r.Method,
				"path", r.URL.Path,
				"session_id", middlewares.SessionID(r.Context()),
			)

			if c.config.ErrorHandler != nil {
				c.config.ErrorHandler(w, r, err)
			} else {
				http.Error(w, "CSRF token validation failed", http.StatusForbidden)
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}

// FieldName is the form field the token is read from.
func (c *CSRFProtection) FieldName() string {
	return c.config.FieldName
}

func (c *CSRFProtection) getRequestToken(r *http.Request) string {
	if token := r.Header.Get(c.config.HeaderName); token != "" {
		return token
	}
	if err := r.ParseForm(); err == nil {
		return r.PostFormValue(c.config.FieldName)
	}
	return ""
}

func (c *CSRFProtection) tokenCacheKey(sessionID string) string {
	return c.config.KeyPrefix + "token:" + sessionID
}

// csrfTokenData is the cached form of a session's token
type csrfTokenData struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}
