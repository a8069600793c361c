package shell

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"legal_dashboard/internal/nav"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func sidebarProps(currentPath string, s *State) SidebarProps {
	return SidebarProps{
		Brand:       "Legal Desk",
		Registry:    nav.DefaultRegistry(),
		CurrentPath: currentPath,
		View:        s.View(),
		CSRFToken:   "tok",
	}
}

func TestSidebarMarksExactlyOneActiveEntry(t *testing.T) {
	out := render(t, Sidebar(sidebarProps("/judges", NewState(nav.DefaultRegistry()))))

	assert.Equal(t, 1, strings.Count(out, `aria-current="page"`))
	assert.Contains(t, out, `<a href="/judges" class="active rail-link" aria-current="page">`)
	assert.Contains(t, out, `<a href="/" class="rail-link">`)
}

func TestSidebarNoActiveForPrefixOrTrailingSlash(t *testing.T) {
	for _, p := range []string{"/judges/", "/judges/42", "/unknown"} {
		out := render(t, Sidebar(sidebarProps(p, NewState(nav.DefaultRegistry()))))
		assert.NotContains(t, out, `aria-current="page"`, "path %q", p)
	}
}

func TestSidebarExpandedShowsLabelsAndGroups(t *testing.T) {
	out := render(t, Sidebar(sidebarProps("/", NewState(nav.DefaultRegistry()))))

	assert.Contains(t, out, `data-mode="expanded"`)
	assert.Contains(t, out, "width:256px")
	assert.Contains(t, out, `class="rail-label">Judge&#39;s Dashboard</span>`)
	assert.Contains(t, out, `data-group="accountingReports"`)
	assert.Contains(t, out, `action="/shell/groups/accountingReports/toggle"`)
	assert.Contains(t, out, `aria-expanded="false"`)
	assert.NotContains(t, out, "rail-sub")
	assert.NotContains(t, out, "rail-tooltip")
}

func TestSidebarOpenGroupListsReports(t *testing.T) {
	s := NewState(nav.DefaultRegistry())
	s.ToggleGroup(nav.GroupAccountingReports)

	out := render(t, Sidebar(sidebarProps("/reports/accountingReports/profit-loss", s)))

	assert.Contains(t, out, `id="group-accountingReports"`)
	assert.Contains(t, out, `href="/reports/accountingReports/account-payable-aging-summary"`)
	assert.Contains(t, out, `<a href="/reports/accountingReports/profit-loss" class="active rail-sublink" aria-current="page">`)
	assert.Contains(t, out, `data-has-active="true"`)
	assert.NotContains(t, out, `id="group-caseReports"`)
}

func TestSidebarCollapsedRendersIconRailOnly(t *testing.T) {
	s := NewState(nav.DefaultRegistry())
	s.ToggleGroup(nav.GroupAccountingReports)
	s.ToggleCollapse()

	out := render(t, Sidebar(sidebarProps("/judges", s)))

	assert.Contains(t, out, `data-mode="collapsed"`)
	assert.Contains(t, out, "width:72px")
	assert.NotContains(t, out, "rail-group")
	assert.NotContains(t, out, "rail-label")
	assert.NotContains(t, out, "/reports/")
	assert.Contains(t, out, `title="Judge&#39;s Dashboard"`)
	assert.Contains(t, out, `class="rail-tooltip" role="tooltip"`)
	assert.Contains(t, out, `aria-label="Expand sidebar"`)
}

func TestSidebarFormsCarryReturnAndToken(t *testing.T) {
	out := render(t, Sidebar(sidebarProps("/billing", NewState(nav.DefaultRegistry()))))

	assert.Contains(t, out, `action="/shell/collapse"`)
	assert.Contains(t, out, `name="return" value="/billing"`)
	assert.Contains(t, out, `name="csrf_token" value="tok"`)
}

func TestLayoutKeepsWidthsComplementary(t *testing.T) {
	content := html.P(g.Text("opaque content"))

	for _, collapsed := range []bool{false, true} {
		s := NewState(nav.DefaultRegistry())
		if collapsed {
			s.ToggleCollapse()
		}
		out := render(t, Layout(LayoutProps{
			Sidebar: sidebarProps("/judges", s),
			Header:  nav.Resolve("/judges"),
			Content: content,
		}))

		w := RailWidth(collapsed)
		assert.Contains(t, out, railStyle(collapsed))
		assert.Contains(t, out, contentStyle(collapsed))
		assert.Contains(t, out, "<p>opaque content</p>", "content must render when collapsed=%v", collapsed)
		assert.Contains(t, out, "margin-left:"+strconv.Itoa(w)+"px")
	}
}

func TestHeaderBanner(t *testing.T) {
	out := render(t, HeaderBanner(nav.Resolve("/judges")))

	assert.Contains(t, out, "<h1>Judge&#39;s Dashboard</h1>")
	assert.Contains(t, out, "<p>Case assignments, hearings and opinions</p>")
	assert.Contains(t, out, `data-accent="amber"`)
	assert.Contains(t, out, `data-icon="gavel"`)
}

func TestPageDocument(t *testing.T) {
	out := render(t, Page("Legal Desk", LayoutProps{
		Sidebar: sidebarProps("/unknown", NewState(nav.DefaultRegistry())),
		Header:  nav.Resolve("/unknown"),
		Content: g.Text("x"),
	}))

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "<title>Dashboard · Legal Desk</title>")
	assert.Contains(t, out, "Legal management system dashboard")
}

func TestIconFallback(t *testing.T) {
	out := render(t, icon(nav.IconTag("no-such-icon")))
	assert.Contains(t, out, `data-icon="no-such-icon"`)
	assert.Contains(t, out, "•")
}
