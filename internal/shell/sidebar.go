package shell

import (
	"net/url"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	"maragu.dev/gomponents/html"

	"legal_dashboard/internal/nav"
)

// Form targets for the shell's two mutations.
const (
	CollapseActionPath = "/shell/collapse"
	ReturnField        = "return"
	CSRFField          = "csrf_token"
)

// GroupActionPath is the form target that toggles one report group.
func GroupActionPath(groupID string) string {
	return "/shell/groups/" + url.PathEscape(groupID) + "/toggle"
}

// SidebarProps is everything the rail needs to render. View is a read-only snapshot;
// the rail never mutates state, it only emits navigation links and toggle forms.
type SidebarProps struct {
	Brand       string
	Registry    *nav.Registry
	CurrentPath string
	View        View
	CSRFToken   string
}

// Sidebar renders the navigation rail. While collapsed only the top-level entry icons
// render, each with a hover tooltip; report groups are omitted entirely.
func Sidebar(p SidebarProps) g.Node {
	collapsed := p.View.Collapsed

	children := []g.Node{
		html.ID("rail"),
		c.Classes{"rail": true, "rail-collapsed": collapsed},
		html.Style(railStyle(collapsed)),
		html.Data("mode", p.View.Mode().String()),
		railHeader(p),
		html.Nav(
			html.Aria("label", "Main navigation"),
			html.Ul(
				html.Class("rail-entries"),
				g.Map(p.Registry.Entries(), func(e nav.NavEntry) g.Node {
					return entryItem(e, p.CurrentPath, collapsed)
				}),
			),
		),
	}

	if !collapsed {
		children = append(children, html.Div(
			html.Class("rail-groups"),
			g.Map(p.Registry.Groups(), func(grp nav.ReportGroup) g.Node {
				return reportGroup(grp, p)
			}),
		))
	}

	return html.Aside(children...)
}

func railHeader(p SidebarProps) g.Node {
	brand := p.Brand
	label := "Collapse sidebar"
	if p.View.Collapsed {
		if r := []rune(brand); len(r) > 0 {
			brand = string(r[0])
		}
		label = "Expand sidebar"
	}

	return html.Div(
		html.Class("rail-header"),
		html.Span(html.Class("rail-brand"), g.Text(brand)),
		html.Form(
			html.Method("post"),
			html.Action(CollapseActionPath),
			hiddenFields(p.CSRFToken, p.CurrentPath),
			html.Button(
				html.Type("submit"),
				html.Class("rail-collapse"),
				html.Aria("label", label),
				html.Aria("pressed", boolAttr(p.View.Collapsed)),
				html.Title(label),
				g.Text(collapseGlyph(p.View.Collapsed)),
			),
		),
	)
}

func entryItem(e nav.NavEntry, currentPath string, collapsed bool) g.Node {
	active := nav.IsActive(e.Path, currentPath)

	var label g.Node
	if collapsed {
		label = html.Span(html.Class("rail-tooltip"), html.Role("tooltip"), g.Text(e.Label))
	} else {
		label = html.Span(html.Class("rail-label"), g.Text(e.Label))
	}

	return html.Li(
		html.A(
			html.Href(e.Path),
			c.Classes{"rail-link": true, "active": active},
			g.If(active, html.Aria("current", "page")),
			g.If(collapsed, html.Title(e.Label)),
			g.If(collapsed, html.Aria("label", e.Label)),
			icon(e.Icon),
			label,
		),
	)
}

func reportGroup(grp nav.ReportGroup, p SidebarProps) g.Node {
	open := p.View.IsOpen(grp.ID)
	listID := "group-" + grp.ID

	hasActive := false
	for _, item := range grp.Items {
		if nav.IsActive(item.Path, p.CurrentPath) {
			hasActive = true
			break
		}
	}

	return html.Div(
		c.Classes{"rail-group": true, "open": open},
		html.Data("group", grp.ID),
		g.If(hasActive, html.Data("has-active", "true")),
		html.Form(
			html.Method("post"),
			html.Action(GroupActionPath(grp.ID)),
			hiddenFields(p.CSRFToken, p.CurrentPath),
			html.Button(
				html.Type("submit"),
				html.Class("rail-group-toggle"),
				html.Aria("expanded", boolAttr(open)),
				html.Aria("controls", listID),
				icon(grp.Icon),
				html.Span(html.Class("rail-label"), g.Text(grp.Label)),
				html.Span(html.Class("chevron"), g.Text(chevronGlyph(open))),
			),
		),
		g.If(open, html.Ul(
			html.ID(listID),
			html.Class("rail-sub"),
			g.Map(grp.Items, func(item nav.ReportSubItem) g.Node {
				active := nav.IsActive(item.Path, p.CurrentPath)
				return html.Li(
					html.A(
						html.Href(item.Path),
						c.Classes{"rail-sublink": true, "active": active},
						g.If(active, html.Aria("current", "page")),
						g.Text(item.Label),
					),
				)
			}),
		)),
	)
}

func hiddenFields(csrfToken, returnTo string) g.Node {
	return g.Group{
		html.Input(html.Type("hidden"), html.Name(CSRFField), html.Value(csrfToken)),
		html.Input(html.Type("hidden"), html.Name(ReturnField), html.Value(returnTo)),
	}
}

// icon maps an icon tag to a glyph. Unknown tags fall back to the generic dot.
func icon(tag nav.IconTag) g.Node {
	glyph := "•"
	switch tag {
	case nav.IconDashboard:
		glyph = "▦"
	case nav.IconGavel:
		glyph = "⚖"
	case nav.IconBriefcase:
		glyph = "💼"
	case nav.IconUsers:
		glyph = "👥"
	case nav.IconFolder:
		glyph = "📁"
	case nav.IconFileText:
		glyph = "📄"
	case nav.IconPenLine:
		glyph = "✎"
	case nav.IconCalendar:
		glyph = "📅"
	case nav.IconReceipt:
		glyph = "🧾"
	case nav.IconMessage:
		glyph = "💬"
	case nav.IconSettings:
		glyph = "⚙"
	case nav.IconCalculator:
		glyph = "🖩"
	case nav.IconScale:
		glyph = "⚖"
	case nav.IconClock:
		glyph = "⏱"
	}

	return html.Span(
		html.Class("icon"),
		html.Data("icon", string(tag)),
		html.Aria("hidden", "true"),
		g.Text(glyph),
	)
}

func collapseGlyph(collapsed bool) string {
	if collapsed {
		return "»"
	}
	return "«"
}

func chevronGlyph(open bool) string {
	if open {
		return "▾"
	}
	return "▸"
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
