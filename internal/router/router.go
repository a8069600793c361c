package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// MiddlewaresType defines the middleware function signature
type MiddlewaresType func(http.Handler) http.Handler

// Route represents a single HTTP route
type Route struct {
	Category    string
	Method      string
	Path        string
	HandlerFunc http.HandlerFunc
	Middlewares []MiddlewaresType
}

// RouteGroup represents a group of routes with shared configuration
type RouteGroup struct {
	Prefix      string
	Category    string
	Middlewares []MiddlewaresType
	Routes      []*Route
}

// RouterConfig holds configuration for the router
type RouterConfig struct {
	// Mode "dev" panics on route conflicts instead of overwriting
	Mode string
}

// DefaultRouterConfig returns a default router configuration
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{Mode: "prod"}
}

// CompiledRoute is a registered route as the mux sees it.
type CompiledRoute struct {
	Method       string
	Path         string
	FullPattern  string // "METHOD /full/path"
	Category     string
	RegisteredAt time.Time
}

// RouteConflictError is returned when a pattern is registered twice.
type RouteConflictError struct {
	NewRoute      string
	ExistingRoute string
	Message       string
}

func (e *RouteConflictError) Error() string {
	return fmt.Sprintf("route conflict: %s conflicts with existing route %s - %s",
		e.NewRoute, e.ExistingRoute, e.Message)
}

// Router wraps http.ServeMux with method-qualified patterns and per-route
// middleware chains. Middlewares run after the mux has matched, so
// r.Pattern is set for every one of them.
type Router struct {
	config            *RouterConfig
	mux               *http.ServeMux
	logger            *slog.Logger
	globalMiddlewares []MiddlewaresType
	compiledRoutes    map[string]*CompiledRoute
	routesMu          sync.RWMutex
}

// NewRouter creates a new Router instance with the given configuration
func NewRouter(config *RouterConfig, logger *slog.Logger, globalMiddlewares ...MiddlewaresType) *Router {
	if config == nil {
		config = DefaultRouterConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Router{
		config:            config,
		mux:               http.NewServeMux(),
		logger:            logger,
		globalMiddlewares: globalMiddlewares,
		compiledRoutes:    make(map[string]*CompiledRoute),
	}
}

// Register registers a single route with conflict detection
func (r *Router) Register(route *Route) {
	method := strings.ToUpper(route.Method)
	pattern := method + " " + route.Path

	r.routesMu.Lock()
	if existing, exists := r.compiledRoutes[pattern]; exists {
		err := &RouteConflictError{
			NewRoute:      pattern,
			ExistingRoute: existing.FullPattern,
			Message:       fmt.Sprintf("registered at %s", existing.RegisteredAt.Format(time.RFC3339)),
		}
		r.routesMu.Unlock()
		if r.config.Mode == "dev" {
			r.logger.Error("Route conflict detected", "error", err)
			panic(err)
		}
		r.logger.Warn("Route conflict detected, ignoring duplicate", "error", err)
		return
	}
	r.compiledRoutes[pattern] = &CompiledRoute{
		Method:       method,
		Path:         route.Path,
		FullPattern:  pattern,
		Category:     route.Category,
		RegisteredAt: time.Now(),
	}
	r.routesMu.Unlock()

	all := make([]MiddlewaresType, 0, len(r.globalMiddlewares)+len(route.Middlewares))
	all = append(all, r.globalMiddlewares...)
	all = append(all, route.Middlewares...)

	r.mux.Handle(pattern, chainMiddlewares(route.HandlerFunc, all))

	r.logger.Debug("Route registered", "method", method, "path", route.Path, "category", route.Category)
}

// RegisterGroup registers a group of routes with shared configuration
func (r *Router) RegisterGroup(group *RouteGroup) {
	if group == nil {
		return
	}

	for _, route := range group.Routes {
		if route.Category == "" {
			route.Category = group.Category
		}

		if group.Prefix != "" {
			prefix := strings.TrimSuffix(group.Prefix, "/")
			route.Path = prefix + "/" + strings.TrimPrefix(route.Path, "/")
		}

		if len(group.Middlewares) > 0 {
			mws := make([]MiddlewaresType, 0, len(group.Middlewares)+len(route.Middlewares))
			mws = append(mws, group.Middlewares...)
			route.Middlewares = append(mws, route.Middlewares...)
		}

		r.Register(route)
	}

	r.logger.Info("Route group registered", "category", group.Category, "routes", len(group.Routes))
}

// Routes lists registered patterns in sorted order.
func (r *Router) Routes() []string {
	r.routesMu.RLock()
	defer r.routesMu.RUnlock()

	out := make([]string, 0, len(r.compiledRoutes))
	for pattern := range r.compiledRoutes {
		out = append(out, pattern)
	}
	sort.Strings(out)
	return out
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// chainMiddlewares applies middlewares so the first one listed runs outermost
func chainMiddlewares(handler http.Handler, middlewares []MiddlewaresType) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
