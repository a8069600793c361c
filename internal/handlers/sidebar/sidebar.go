package sidebar

import (
	"net/http"

	"legal_dashboard/internal/handlers"
	"legal_dashboard/internal/middlewares"
	"legal_dashboard/internal/shell"
)

// SidebarHandler applies the rail's two mutations and redirects back to the page
// the form was posted from.
type SidebarHandler struct {
	h *handlers.Handler
}

func NewSidebarHandler(h *handlers.Handler) *SidebarHandler {
	return &SidebarHandler{h: h}
}

func (s *SidebarHandler) redirectBack(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, handlers.SafeReturn(r.PostFormValue(shell.ReturnField)), http.StatusSeeOther)
}

// ToggleCollapse flips the rail between expanded and collapsed.
// Endpoint: POST /shell/collapse
func (s *SidebarHandler) ToggleCollapse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := s.h.SessionLogger(ctx)

	state, err := s.h.Store.Update(ctx, middlewares.SessionID(ctx), func(st *shell.State) {
		st.ToggleCollapse()
	})
	if err != nil {
		logger.Error("failed to save shell state", "action", "collapse", "error", err)
		http.Error(w, "Could not save the sidebar state", http.StatusInternalServerError)
		return
	}

	s.h.Metrics.Toggled("collapse")
	logger.Debug("shell collapse toggled", "collapsed", state.Collapsed)

	s.redirectBack(w, r)
}

// ToggleGroup flips one report group open or closed. Toggles against a
// collapsed rail or an unknown group leave the state as it was.
// Endpoint: POST /shell/groups/{id}/toggle
func (s *SidebarHandler) ToggleGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := s.h.SessionLogger(ctx)
	id := r.PathValue("id")

	var result shell.ToggleResult
	state, err := s.h.Store.Update(ctx, middlewares.SessionID(ctx), func(st *shell.State) {
		result = st.ToggleGroup(id)
	})
	if err != nil {
		logger.Error("failed to save shell state", "action", "group", "group", id, "error", err)
		http.Error(w, "Could not save the sidebar state", http.StatusInternalServerError)
		return
	}

	if result == shell.Toggled {
		s.h.Metrics.Toggled("group")
		logger.Debug("report group toggled", "group", id, "open", state.IsOpen(id))
	} else {
		s.h.Metrics.Ignored(result.String())
		logger.Debug("report group toggle ignored", "group", id, "reason", result.String())
	}

	s.redirectBack(w, r)
}
