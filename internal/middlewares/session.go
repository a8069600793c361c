package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type sessionKey struct{}

// SessionConfig holds configuration for the session cookie middleware
type SessionConfig struct {
	// Logger for structured logging (optional, uses slog.Default if nil)
	Logger *slog.Logger

	// CookieName names the session cookie
	// Default: shell_session
	CookieName string

	// TTL sets the cookie Max-Age
	// Default: 24h
	TTL time.Duration

	// Secure marks the cookie HTTPS-only
	Secure bool
}

// DefaultSessionConfig returns a default session configuration
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		CookieName: "shell_session",
		TTL:        24 * time.Hour,
	}
}

// Session returns a middleware that identifies the browser session with a
// random UUID cookie and stores the id in the request context. Cookies that
// are absent or malformed are replaced with a new id.
func Session(config *SessionConfig) func(next http.Handler) http.Handler {
	if config == nil {
		config = DefaultSessionConfig()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if config.CookieName == "" {
		config.CookieName = "shell_session"
	}
	if config.TTL <= 0 {
		config.TTL = 24 * time.Hour
	}

	logger.Debug("session middleware initialized",
		"cookie", config.CookieName,
		"ttl", config.TTL.String(),
		"secure", config.Secure,
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(config.CookieName); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					id = c.Value
				}
			}

			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     config.CookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(config.TTL.Seconds()),
					HttpOnly: true,
					Secure:   config.Secure,
					SameSite: http.SameSiteLaxMode,
				})
				logger.Debug("session issued", "session_id", id, "path", r.URL.Path)
			}

			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
		})
	}
}

// WithSessionID returns a context carrying the session id.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// SessionID returns the session id stored by Session, or "".
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
