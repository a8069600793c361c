package content

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"legal_dashboard/internal/nav"
)

// Table is a report rendered as a header row plus data rows.
type Table struct {
	Title   string
	GroupID string
	Slug    string
	Headers []string
	Rows    [][]string
}

type tableData struct {
	headers []string
	rows    [][]string
}

// groupTables holds the mock data shared by every report of a group.
var groupTables = map[string]tableData{
	nav.GroupAccountingReports: {
		headers: []string{"Party", "Current", "1-30 days", "31-60 days", "Over 60 days", "Total"},
		rows: [][]string{
			{"Harbor Court Reporters", "1,250.00", "0.00", "480.00", "0.00", "1,730.00"},
			{"Westlaw Research", "2,100.00", "2,100.00", "0.00", "0.00", "4,200.00"},
			{"County Filing Office", "315.00", "0.00", "0.00", "95.00", "410.00"},
			{"Expert Witness Group", "0.00", "6,800.00", "3,400.00", "1,200.00", "11,400.00"},
		},
	},
	nav.GroupCaseReports: {
		headers: []string{"Matter", "Client", "Responsible attorney", "Status", "Next date"},
		rows: [][]string{
			{"2024-CV-0113", "Alder Holdings", "M. Okafor", "Discovery", "2026-11-04"},
			{"2024-CV-0287", "Brightline Logistics", "S. Varga", "Motion practice", "2026-10-28"},
			{"2025-FA-0042", "Estate of R. Lindqvist", "J. Moreau", "Mediation", "2026-11-12"},
			{"2025-CR-0019", "State v. Pell", "A. Chen", "Trial prep", "2026-12-01"},
		},
	},
	nav.GroupTimeReports: {
		headers: []string{"Timekeeper", "Matter", "Hours", "Rate", "Amount"},
		rows: [][]string{
			{"M. Okafor", "2024-CV-0113", "12.5", "425.00", "5,312.50"},
			{"S. Varga", "2024-CV-0287", "8.2", "390.00", "3,198.00"},
			{"J. Moreau", "2025-FA-0042", "5.0", "450.00", "2,250.00"},
			{"A. Chen", "2025-CR-0019", "21.3", "375.00", "7,987.50"},
		},
	},
}

// reportTables overrides the group data for reports with their own shape, keyed by path.
var reportTables = map[string]tableData{
	nav.ReportPath(nav.GroupAccountingReports, "profit-loss"): {
		headers: []string{"Line", "This month", "Year to date"},
		rows: [][]string{
			{"Fee revenue", "212,950.00", "1,944,300.00"},
			{"Reimbursed costs", "8,410.00", "71,220.00"},
			{"Salaries", "-131,000.00", "-1,179,000.00"},
			{"Rent & occupancy", "-18,500.00", "-166,500.00"},
			{"Net income", "71,860.00", "670,020.00"},
		},
	},
	nav.ReportPath(nav.GroupAccountingReports, "balance-sheet"): {
		headers: []string{"Account", "Balance"},
		rows: [][]string{
			{"Operating cash", "412,880.00"},
			{"Client trust account", "1,204,310.00"},
			{"Accounts receivable", "298,150.00"},
			{"Trust liability", "-1,204,310.00"},
			{"Partners' equity", "-711,030.00"},
		},
	},
	nav.ReportPath(nav.GroupAccountingReports, "trial-balance"): {
		headers: []string{"Account", "Debit", "Credit"},
		rows: [][]string{
			{"1000 Operating cash", "412,880.00", ""},
			{"1100 Client trust account", "1,204,310.00", ""},
			{"1200 Accounts receivable", "298,150.00", ""},
			{"2100 Trust liability", "", "1,204,310.00"},
			{"3000 Partners' equity", "", "711,030.00"},
		},
	},
}

// Reports renders a table for every report sub-item in the registry.
type Reports struct {
	tables map[string]Table
}

// NewReports builds the tables for every report in reg.
func NewReports(reg *nav.Registry) *Reports {
	r := &Reports{tables: make(map[string]Table)}

	for _, grp := range reg.Groups() {
		for _, item := range grp.Items {
			data, ok := reportTables[item.Path]
			if !ok {
				data = groupTables[grp.ID]
			}
			r.tables[item.Path] = Table{
				Title:   item.Label,
				GroupID: grp.ID,
				Slug:    item.Slug,
				Headers: data.headers,
				Rows:    data.rows,
			}
		}
	}

	return r
}

// ExportPath is the XLSX download path of a report.
func ExportPath(groupID, slug string) string {
	return nav.ReportPath(groupID, slug) + "/export.xlsx"
}

// Table returns the report addressed by group id and slug.
func (r *Reports) Table(groupID, slug string) (Table, bool) {
	t, ok := r.tables[nav.ReportPath(groupID, slug)]
	return t, ok
}

func (r *Reports) Render(path string) (g.Node, bool) {
	t, ok := r.tables[path]
	if !ok {
		return nil, false
	}

	return html.Div(
		html.Class("report"),
		html.Div(
			html.Class("report-toolbar"),
			html.H2(g.Text(t.Title)),
			html.A(html.Href(ExportPath(t.GroupID, t.Slug)), html.Class("export"), g.Text("Export to Excel")),
		),
		html.Table(
			html.THead(html.Tr(g.Map(t.Headers, func(h string) g.Node {
				return html.Th(g.Text(h))
			}))),
			html.TBody(g.Map(t.Rows, func(row []string) g.Node {
				return html.Tr(g.Map(row, func(cell string) g.Node {
					return html.Td(g.Text(cell))
				}))
			})),
		),
	), true
}
