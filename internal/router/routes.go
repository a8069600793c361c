package router

import (
	"net/http"

	"legal_dashboard/internal/handlers"
	"legal_dashboard/internal/handlers/dashboard"
	"legal_dashboard/internal/handlers/reports"
	"legal_dashboard/internal/handlers/sidebar"
	"legal_dashboard/internal/middlewares"
	"legal_dashboard/internal/observability"
)

// Dependencies is everything the route table needs.
type Dependencies struct {
	Handler   *handlers.Handler
	Metrics   *observability.Metrics
	Health    *observability.HealthConfig
	Session   *middlewares.SessionConfig
	RateLimit *middlewares.RateLimitConfig
}

// RegisterRoutes mounts the shell, its JSON views, report exports and the
// operational endpoints. Only browser-facing routes get a session cookie.
func RegisterRoutes(r *Router, d Dependencies) {
	session := middlewares.Session(d.Session)

	dash := dashboard.NewDashboardHandler(d.Handler)
	side := sidebar.NewSidebarHandler(d.Handler)
	rep := reports.NewReportHandler(d.Handler)

	r.RegisterGroup(&RouteGroup{
		Category:    "operations",
		Middlewares: nil,
		Routes: []*Route{
			{Method: http.MethodGet, Path: "/health", HandlerFunc: observability.HealthHandler(d.Health)},
			{Method: http.MethodGet, Path: "/live", HandlerFunc: observability.LivenessHandler()},
			{Method: http.MethodGet, Path: "/metrics", HandlerFunc: d.Metrics.Handler().ServeHTTP},
		},
	})

	r.RegisterGroup(&RouteGroup{
		Category:    "pages",
		Middlewares: []MiddlewaresType{session},
		Routes: []*Route{
			{Method: http.MethodGet, Path: "/{path...}", HandlerFunc: dash.ServePage},
			{Method: http.MethodGet, Path: "/reports/{group}/{slug}/export.xlsx", HandlerFunc: rep.ExportReport},
		},
	})

	r.RegisterGroup(&RouteGroup{
		Category:    "api",
		Middlewares: []MiddlewaresType{session},
		Routes: []*Route{
			{Method: http.MethodGet, Path: "/api/header", HandlerFunc: dash.GetHeader},
			{Method: http.MethodGet, Path: "/api/nav", HandlerFunc: dash.GetNav},
		},
	})

	r.RegisterGroup(&RouteGroup{
		Category: "shell",
		Middlewares: []MiddlewaresType{
			session,
			middlewares.RateLimit(d.RateLimit),
			d.Handler.CSRF.Middleware,
		},
		Routes: []*Route{
			{Method: http.MethodPost, Path: "/shell/collapse", HandlerFunc: side.ToggleCollapse},
			{Method: http.MethodPost, Path: "/shell/groups/{id}/toggle", HandlerFunc: side.ToggleGroup},
		},
	})
}
