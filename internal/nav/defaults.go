package nav

// Report group ids.
const (
	GroupAccountingReports = "accountingReports"
	GroupCaseReports       = "caseReports"
	GroupTimeReports       = "timeReports"
)

var defaultRegistry = MustNewRegistry(
	[]NavEntry{
		{Label: "Firm Overview", Icon: IconDashboard, Path: RouteOverview.Path()},
		{Label: "Judge's Dashboard", Icon: IconGavel, Path: RouteJudges.Path()},
		{Label: "Attorney's Dashboard", Icon: IconBriefcase, Path: RouteAttorneys.Path()},
		{Label: "Client Portal", Icon: IconUsers, Path: RouteClients.Path()},
		{Label: "Case Management", Icon: IconFolder, Path: RouteCases.Path()},
		{Label: "Documents", Icon: IconFileText, Path: RouteDocuments.Path()},
		{Label: "Memo Drafting", Icon: IconPenLine, Path: RouteMemos.Path()},
		{Label: "Calendar", Icon: IconCalendar, Path: RouteCalendar.Path()},
		{Label: "Billing", Icon: IconReceipt, Path: RouteBilling.Path()},
		{Label: "Team Chat", Icon: IconMessage, Path: RouteChat.Path()},
		{Label: "Settings", Icon: IconSettings, Path: RouteSettings.Path()},
	},
	[]ReportGroup{
		NewReportGroup(GroupAccountingReports, "Accounting Reports", IconCalculator,
			"Account Payable Aging Summary",
			"Account Receivable Aging Summary",
			"Profit & Loss",
			"Balance Sheet",
			"Trial Balance",
			"General Ledger",
			"Trust Account Reconciliation",
		),
		NewReportGroup(GroupCaseReports, "Case Reports", IconScale,
			"Open Cases by Attorney",
			"Case Status Summary",
			"Statute of Limitations",
			"Court Deadlines",
		),
		NewReportGroup(GroupTimeReports, "Time & Billing Reports", IconClock,
			"Billable Hours by Attorney",
			"Time & Expense Detail",
			"Unbilled Time",
			"Collections Summary",
		),
	},
)

// DefaultRegistry returns the dashboard's static navigation.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
