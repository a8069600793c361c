package nav

// HeaderInfo is the page banner metadata for a path. It is derived per render and never stored.
type HeaderInfo struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        IconTag    `json:"icon"`
	AccentColor ColorToken `json:"accent_color"`
}

// Route enumerates the paths with a dedicated page header.
type Route int

const (
	RouteOverview Route = iota
	RouteJudges
	RouteAttorneys
	RouteClients
	RouteCases
	RouteDocuments
	RouteMemos
	RouteCalendar
	RouteBilling
	RouteChat
	RouteSettings

	routeCount
)

var routePaths = [routeCount]string{
	RouteOverview:  "/",
	RouteJudges:    "/judges",
	RouteAttorneys: "/attorneys",
	RouteClients:   "/clients",
	RouteCases:     "/cases",
	RouteDocuments: "/documents",
	RouteMemos:     "/memos",
	RouteCalendar:  "/calendar",
	RouteBilling:   "/billing",
	RouteChat:      "/chat",
	RouteSettings:  "/settings",
}

var routeHeaders = [routeCount]HeaderInfo{
	RouteOverview: {
		Title:       "Firm Overview",
		Description: "Matters, deadlines and firm performance at a glance",
		Icon:        IconDashboard,
		AccentColor: ColorIndigo,
	},
	RouteJudges: {
		Title:       "Judge's Dashboard",
		Description: "Case assignments, hearings and opinions",
		Icon:        IconGavel,
		AccentColor: ColorAmber,
	},
	RouteAttorneys: {
		Title:       "Attorney's Dashboard",
		Description: "Caseload, billable hours and upcoming filings",
		Icon:        IconBriefcase,
		AccentColor: ColorSky,
	},
	RouteClients: {
		Title:       "Client Portal",
		Description: "Client matters, invoices and shared documents",
		Icon:        IconUsers,
		AccentColor: ColorEmerald,
	},
	RouteCases: {
		Title:       "Case Management",
		Description: "Open matters, parties and case status",
		Icon:        IconFolder,
		AccentColor: ColorViolet,
	},
	RouteDocuments: {
		Title:       "Documents",
		Description: "Pleadings, contracts and correspondence",
		Icon:        IconFileText,
		AccentColor: ColorTeal,
	},
	RouteMemos: {
		Title:       "Memo Drafting",
		Description: "Draft and review legal memoranda",
		Icon:        IconPenLine,
		AccentColor: ColorRose,
	},
	RouteCalendar: {
		Title:       "Calendar",
		Description: "Hearings, depositions and filing deadlines",
		Icon:        IconCalendar,
		AccentColor: ColorOrange,
	},
	RouteBilling: {
		Title:       "Billing",
		Description: "Invoices, payments and trust accounting",
		Icon:        IconReceipt,
		AccentColor: ColorEmerald,
	},
	RouteChat: {
		Title:       "Team Chat",
		Description: "Conversations with colleagues on active matters",
		Icon:        IconMessage,
		AccentColor: ColorSky,
	},
	RouteSettings: {
		Title:       "Settings",
		Description: "Firm profile, users and preferences",
		Icon:        IconSettings,
		AccentColor: ColorNeutral,
	},
}

var defaultHeader = HeaderInfo{
	Title:       "Dashboard",
	Description: "Legal management system dashboard",
	Icon:        IconGeneric,
	AccentColor: ColorNeutral,
}

var routeByPath = func() map[string]Route {
	m := make(map[string]Route, routeCount)
	for r := Route(0); r < routeCount; r++ {
		m[routePaths[r]] = r
	}
	return m
}()

// Routes returns every enumerated route in declaration order.
func Routes() []Route {
	out := make([]Route, 0, routeCount)
	for r := Route(0); r < routeCount; r++ {
		out = append(out, r)
	}
	return out
}

// LookupRoute returns the route whose path equals path exactly.
func LookupRoute(path string) (Route, bool) {
	r, ok := routeByPath[path]
	return r, ok
}

// Path returns the route's path, or "" for a value outside the enumeration.
func (r Route) Path() string {
	if r < 0 || r >= routeCount {
		return ""
	}
	return routePaths[r]
}

// Header returns the route's literal header record, or the default for a value outside
// the enumeration.
func (r Route) Header() HeaderInfo {
	if r < 0 || r >= routeCount {
		return defaultHeader
	}
	return routeHeaders[r]
}

// DefaultHeader is the header shown for any path without a dedicated record.
func DefaultHeader() HeaderInfo {
	return defaultHeader
}

// Resolve maps a path to its page header. It is total: unknown paths get DefaultHeader.
func Resolve(path string) HeaderInfo {
	if r, ok := LookupRoute(path); ok {
		return r.Header()
	}
	return defaultHeader
}
