package content

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	"maragu.dev/gomponents/html"

	"legal_dashboard/internal/nav"
)

// Metric is one card on a dashboard.
type Metric struct {
	Label string
	Value string
	Trend string // "up", "down" or ""
	Note  string
}

// Dashboards renders metric-card grids for the top-level dashboard routes.
type Dashboards struct {
	metrics map[string][]Metric
}

// NewDashboards returns the dashboards with their mock figures.
func NewDashboards() *Dashboards {
	return &Dashboards{metrics: map[string][]Metric{
		nav.RouteOverview.Path(): {
			{Label: "Open matters", Value: "128", Trend: "up", Note: "+6 this month"},
			{Label: "Hearings this week", Value: "14"},
			{Label: "Unbilled hours", Value: "312.5", Trend: "down", Note: "-8% vs last month"},
			{Label: "Collections (MTD)", Value: "$184,200", Trend: "up"},
		},
		nav.RouteJudges.Path(): {
			{Label: "Assigned cases", Value: "42"},
			{Label: "Hearings scheduled", Value: "9", Note: "next: Tue 09:30"},
			{Label: "Opinions pending", Value: "5", Trend: "down"},
			{Label: "Motions under review", Value: "11"},
		},
		nav.RouteAttorneys.Path(): {
			{Label: "Active caseload", Value: "23"},
			{Label: "Billable hours (MTD)", Value: "118.4", Trend: "up"},
			{Label: "Filings due in 7 days", Value: "4"},
			{Label: "Realisation rate", Value: "92%"},
		},
		nav.RouteClients.Path(): {
			{Label: "Active clients", Value: "76"},
			{Label: "Outstanding invoices", Value: "19", Trend: "down"},
			{Label: "Shared documents", Value: "342"},
		},
		nav.RouteCases.Path(): {
			{Label: "Open", Value: "128"},
			{Label: "In discovery", Value: "37"},
			{Label: "Awaiting judgment", Value: "12"},
			{Label: "Closed this quarter", Value: "21", Trend: "up"},
		},
		nav.RouteDocuments.Path(): {
			{Label: "Documents", Value: "8,412"},
			{Label: "Awaiting signature", Value: "17"},
			{Label: "Uploaded this week", Value: "233", Trend: "up"},
		},
		nav.RouteMemos.Path(): {
			{Label: "Drafts", Value: "6"},
			{Label: "In review", Value: "3"},
			{Label: "Finalised (MTD)", Value: "14"},
		},
		nav.RouteCalendar.Path(): {
			{Label: "Hearings", Value: "14"},
			{Label: "Depositions", Value: "5"},
			{Label: "Filing deadlines", Value: "22", Note: "3 within 48 hours"},
		},
		nav.RouteBilling.Path(): {
			{Label: "Invoiced (MTD)", Value: "$212,950"},
			{Label: "Collected (MTD)", Value: "$184,200", Trend: "up"},
			{Label: "Trust balance", Value: "$1,204,310"},
			{Label: "Overdue > 60 days", Value: "$31,400", Trend: "down"},
		},
		nav.RouteChat.Path(): {
			{Label: "Unread messages", Value: "12"},
			{Label: "Active threads", Value: "8"},
		},
		nav.RouteSettings.Path(): {
			{Label: "Users", Value: "34"},
			{Label: "Practice areas", Value: "9"},
		},
	}}
}

// Metrics returns the cards for path.
func (d *Dashboards) Metrics(path string) ([]Metric, bool) {
	m, ok := d.metrics[path]
	return m, ok
}

func (d *Dashboards) Render(path string) (g.Node, bool) {
	metrics, ok := d.metrics[path]
	if !ok {
		return nil, false
	}

	return html.Div(
		html.Class("cards"),
		g.Map(metrics, metricCard),
	), true
}

func metricCard(m Metric) g.Node {
	return html.Div(
		c.Classes{"card": true, "trend-up": m.Trend == "up", "trend-down": m.Trend == "down"},
		html.Div(html.Class("label"), g.Text(m.Label)),
		html.Div(html.Class("value"), g.Text(m.Value)),
		g.If(m.Note != "", html.Div(html.Class("note"), g.Text(m.Note))),
	)
}
