package shell

import (
	"fmt"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	"maragu.dev/gomponents/html"

	"legal_dashboard/internal/nav"
)

// LayoutProps composes the rail, the page header and an opaque content node.
type LayoutProps struct {
	Sidebar SidebarProps
	Header  nav.HeaderInfo
	Content g.Node
}

// Layout renders the shell: the rail plus a content region whose margin and width track
// the rail width. Content renders the same regardless of the collapse flag.
func Layout(p LayoutProps) g.Node {
	collapsed := p.Sidebar.View.Collapsed

	return html.Div(
		c.Classes{"shell": true, "shell-collapsed": collapsed},
		Sidebar(p.Sidebar),
		html.Main(
			html.ID("content"),
			html.Class("content"),
			html.Style(contentStyle(collapsed)),
			HeaderBanner(p.Header),
			html.Section(html.Class("content-body"), p.Content),
		),
	)
}

// HeaderBanner renders the page header for a resolved HeaderInfo.
func HeaderBanner(h nav.HeaderInfo) g.Node {
	bg, fg := h.AccentColor.Hex()

	return html.Header(
		html.Class("page-header"),
		html.Data("accent", string(h.AccentColor)),
		html.Style(fmt.Sprintf("background:%s;color:%s", bg, fg)),
		icon(h.Icon),
		html.Div(
			html.H1(g.Text(h.Title)),
			html.P(g.Text(h.Description)),
		),
	)
}

// Page renders a complete HTML document around Layout.
func Page(title string, p LayoutProps) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    p.Header.Title + " · " + title,
		Language: "en",
		Head: []g.Node{
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.StyleEl(g.Raw(stylesheet)),
		},
		Body: []g.Node{Layout(p)},
	})
}

const stylesheet = `
*{box-sizing:border-box}
body{margin:0;font-family:system-ui,sans-serif;color:#0f172a;background:#f8fafc}
.shell{display:flex;min-height:100vh;width:100%}
.rail{position:fixed;top:0;bottom:0;left:0;overflow-y:auto;background:#0f172a;color:#e2e8f0;transition:width .2s}
.rail-header{display:flex;align-items:center;justify-content:space-between;padding:16px}
.rail-brand{font-weight:700}
.rail-collapse,.rail-group-toggle{background:none;border:0;color:inherit;cursor:pointer;font:inherit}
.rail ul{list-style:none;margin:0;padding:0}
.rail-link,.rail-sublink{position:relative;display:flex;gap:10px;align-items:center;padding:8px 16px;color:inherit;text-decoration:none}
.rail-link.active,.rail-sublink.active{background:#1e293b;color:#fff;font-weight:600}
.rail-group-toggle{display:flex;gap:10px;align-items:center;width:100%;padding:8px 16px;text-align:left}
.rail-group-toggle .chevron{margin-left:auto}
.rail-sub .rail-sublink{padding-left:44px;font-size:.9em}
.rail-tooltip{position:absolute;left:100%;white-space:nowrap;background:#1e293b;padding:4px 8px;border-radius:4px;visibility:hidden}
.rail-link:hover .rail-tooltip{visibility:visible}
.rail-collapsed .rail-link{justify-content:center}
.content{transition:margin-left .2s,width .2s}
.page-header{display:flex;gap:16px;align-items:center;padding:24px 32px}
.page-header h1{margin:0;font-size:1.5rem}
.page-header p{margin:4px 0 0}
.content-body{padding:24px 32px}
.cards{display:grid;grid-template-columns:repeat(auto-fill,minmax(200px,1fr));gap:16px}
.card{background:#fff;border:1px solid #e2e8f0;border-radius:8px;padding:16px}
.card .value{font-size:1.75rem;font-weight:700}
table{width:100%;border-collapse:collapse;background:#fff}
th,td{padding:8px 12px;border-bottom:1px solid #e2e8f0;text-align:left}
`
