package middlewares

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	"maragu.dev/gomponents/html"

	"legal_dashboard/internal/observability"
)

// RecoveryConfig holds configuration for recovery middleware
type RecoveryConfig struct {
	// Logger for structured logging (optional, uses slog.Default if nil)
	Logger *slog.Logger

	// DisableStackTrace disables stack trace in panic recovery
	// Default: false
	DisableStackTrace bool

	// Recovery function that handles the panic
	RecoveryHandler func(w http.ResponseWriter, r *http.Request, err interface{}, stack []byte)

	// Development mode shows the panic value and stack on the error page
	// Default: false (should be true only in development)
	Development bool
}

// DefaultRecoveryConfig returns a default recovery configuration
func DefaultRecoveryConfig() *RecoveryConfig {
	return &RecoveryConfig{}
}

// wantsJSON reports whether the client should get a JSON error body.
func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

// errorPage is the standalone 500 page; it does not depend on the shell so a
// panic while rendering the shell can still be reported.
func errorPage(requestID string, detail g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    "Something went wrong",
		Language: "en",
		Body: []g.Node{
			html.Main(
				html.Class("error-page"),
				html.H1(g.Text("Something went wrong")),
				html.P(g.Text("The page could not be rendered. Please try again.")),
				g.If(requestID != "", html.P(html.Class("request-id"), g.Textf("Request ID: %s", requestID))),
				detail,
				html.A(html.Href("/"), g.Text("Back to the firm overview")),
			),
		},
	})
}

func recoveryHandler(development bool) func(w http.ResponseWriter, r *http.Request, err interface{}, stack []byte) {
	return func(w http.ResponseWriter, r *http.Request, err interface{}, stack []byte) {
		requestID := observability.GetRequestID(r.Context())

		if wantsJSON(r) {
			response := map[string]interface{}{
				"error":      "Internal Server Error",
				"message":    "An unexpected error occurred",
				"timestamp":  time.Now().Format(time.RFC3339),
				"request_id": requestID,
			}
			if development {
				response["message"] = fmt.Sprintf("Panic: %v", err)
				response["stack"] = string(stack)
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(response)
			return
		}

		var detail g.Node
		if development {
			detail = html.Pre(g.Textf("panic: %v\n\n%s", err, stack))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_ = errorPage(requestID, detail).Render(w)
	}
}

// Recovery returns a recovery middleware that recovers from panics
func Recovery(config *RecoveryConfig) func(next http.Handler) http.Handler {
	if config == nil {
		config = DefaultRecoveryConfig()
	}
	if config.RecoveryHandler == nil {
		config.RecoveryHandler = recoveryHandler(config.Development)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("recovery middleware initialized",
		"development", config.Development,
		"disable_stack_trace", config.DisableStackTrace,
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					var stack []byte
					if !config.DisableStackTrace {
						stack = debug.Stack()
					}

					logAttrs := []any{
						"method", r.Method,
						"path", r.URL.Path,
						"client_ip", clientIP(r),
						"error", fmt.Sprintf("%v", err),
					}
					if requestID := observability.GetRequestID(r.Context()); requestID != "" {
						logAttrs = append(logAttrs, "request_id", requestID)
					}
					if stack != nil {
						logAttrs = append(logAttrs, "stack", string(stack))
					}

					logger.Error("panic recovered", logAttrs...)

					config.RecoveryHandler(w, r, err, stack)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
