package handlers

import (
	"context"
	"log/slog"
	"strings"

	"legal_dashboard/internal/content"
	"legal_dashboard/internal/middlewares"
	"legal_dashboard/internal/nav"
	"legal_dashboard/internal/observability"
	"legal_dashboard/internal/security"
	"legal_dashboard/internal/shell"
)

// Handler carries the dependencies shared by every route group.
type Handler struct {
	AppName  string
	Registry *nav.Registry
	Store    shell.Store
	Content  content.Provider
	Reports  *content.Reports
	CSRF     *security.CSRFProtection
	Metrics  *observability.ShellMetrics
	Logger   *slog.Logger
}

func NewHandler(appName string, reg *nav.Registry, store shell.Store, csrf *security.CSRFProtection, m *observability.ShellMetrics, l *slog.Logger) *Handler {
	if l == nil {
		l = slog.Default()
	}
	reports := content.NewReports(reg)
	return &Handler{
		AppName:  appName,
		Registry: reg,
		Store:    store,
		Content:  content.Chain{content.NewDashboards(), reports},
		Reports:  reports,
		CSRF:     csrf,
		Metrics:  m,
		Logger:   l,
	}
}

// SessionLogger returns the handler logger tagged with the request's session and request ids.
func (h *Handler) SessionLogger(ctx context.Context) *slog.Logger {
	return h.Logger.With(
		"session_id", middlewares.SessionID(ctx),
		"request_id", observability.GetRequestID(ctx),
	)
}

// SafeReturn accepts only local absolute paths as a post-toggle redirect
// target and falls back to "/" for anything else.
func SafeReturn(raw string) string {
	if raw == "" || raw[0] != '/' {
		return "/"
	}
	if strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "/"
	}
	if strings.ContainsAny(raw, "\r\n") {
		return "/"
	}
	return raw
}
