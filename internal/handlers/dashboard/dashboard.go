package dashboard

import (
	"context"
	"net/http"

	"legal_dashboard/internal/config"
	"legal_dashboard/internal/content"
	"legal_dashboard/internal/handlers"
	"legal_dashboard/internal/middlewares"
	"legal_dashboard/internal/nav"
	"legal_dashboard/internal/shell"
)

type DashboardHandler struct {
	h *handlers.Handler
}

func NewDashboardHandler(h *handlers.Handler) *DashboardHandler {
	return &DashboardHandler{h: h}
}

// loadState returns the session's shell state. A store failure degrades to the
// initial state so the page still renders.
func (d *DashboardHandler) loadState(ctx context.Context) *shell.State {
	state, err := d.h.Store.Load(ctx, middlewares.SessionID(ctx))
	if err != nil {
		d.h.SessionLogger(ctx).Warn("shell state unavailable, rendering defaults", "error", err)
		return shell.NewState(d.h.Registry)
	}
	return state
}

func (d *DashboardHandler) resolveHeader(path string) nav.HeaderInfo {
	_, matched := nav.LookupRoute(path)
	d.h.Metrics.HeaderResolved(matched)
	return nav.Resolve(path)
}

// ServePage renders the full shell for the request path. Paths no content
// provider serves get the default header, a placeholder body and 404.
func (d *DashboardHandler) ServePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	path := r.URL.Path
	logger := d.h.SessionLogger(ctx)

	state := d.loadState(ctx)

	token, err := d.h.CSRF.Token(ctx, middlewares.SessionID(ctx))
	if err != nil {
		// Navigation still works without a token; only the toggle forms will be refused.
		logger.Error("failed to issue CSRF token", "error", err)
	}

	body, ok := d.h.Content.Render(path)
	status := http.StatusOK
	if !ok {
		body = content.NotFound(path)
		status = http.StatusNotFound
	}

	page := shell.Page(d.h.AppName, shell.LayoutProps{
		Sidebar: shell.SidebarProps{
			Brand:       d.h.AppName,
			Registry:    d.h.Registry,
			CurrentPath: path,
			View:        state.View(),
			CSRFToken:   token,
		},
		Header:  d.resolveHeader(path),
		Content: body,
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := page.Render(w); err != nil {
		logger.Error("failed to render page", "path", path, "error", err)
	}
}

// GetHeader returns the header metadata for ?path=.
// Endpoint: GET /api/header
func (d *DashboardHandler) GetHeader(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		config.RespondBadRequest(w, "Missing path", "the path query parameter is required")
		return
	}

	config.RespondJSON(w, http.StatusOK, d.resolveHeader(path))
}

// NavItem is a navigable link with its active flag for the requested path.
type NavItem struct {
	Label  string      `json:"label"`
	Icon   nav.IconTag `json:"icon,omitempty"`
	Path   string      `json:"path"`
	Active bool        `json:"active"`
}

// NavGroup is a report group with its expansion state.
type NavGroup struct {
	ID        string      `json:"id"`
	Label     string      `json:"label"`
	Icon      nav.IconTag `json:"icon"`
	Open      bool        `json:"open"`
	HasActive bool        `json:"has_active"`
	Items     []NavItem   `json:"items"`
}

// NavResponse describes the rail as the session currently sees it.
type NavResponse struct {
	Path      string     `json:"path"`
	Mode      string     `json:"mode"`
	Collapsed bool       `json:"collapsed"`
	Width     int        `json:"width"`
	Entries   []NavItem  `json:"entries"`
	Groups    []NavGroup `json:"groups"`
}

// GetNav returns the registry annotated with active flags for ?path= and the
// session's collapse and expansion state.
// Endpoint: GET /api/nav
func (d *DashboardHandler) GetNav(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}

	view := d.loadState(r.Context()).View()

	resp := NavResponse{
		Path:      path,
		Mode:      view.Mode().String(),
		Collapsed: view.Collapsed,
		Width:     shell.RailWidth(view.Collapsed),
	}

	for _, e := range d.h.Registry.Entries() {
		resp.Entries = append(resp.Entries, NavItem{
			Label:  e.Label,
			Icon:   e.Icon,
			Path:   e.Path,
			Active: nav.IsActive(e.Path, path),
		})
	}

	for _, grp := range d.h.Registry.Groups() {
		g := NavGroup{
			ID:    grp.ID,
			Label: grp.Label,
			Icon:  grp.Icon,
			Open:  view.IsOpen(grp.ID),
		}
		for _, item := range grp.Items {
			active := nav.IsActive(item.Path, path)
			g.HasActive = g.HasActive || active
			g.Items = append(g.Items, NavItem{Label: item.Label, Path: item.Path, Active: active})
		}
		resp.Groups = append(resp.Groups, g)
	}

	config.RespondJSON(w, http.StatusOK, resp)
}
