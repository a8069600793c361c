package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"legal_dashboard/internal/cache"
	"legal_dashboard/internal/content"
	"legal_dashboard/internal/handlers"
	"legal_dashboard/internal/handlers/dashboard"
	"legal_dashboard/internal/middlewares"
	"legal_dashboard/internal/nav"
	"legal_dashboard/internal/observability"
	"legal_dashboard/internal/security"
	"legal_dashboard/internal/shell"
)

var tokenPattern = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := nav.DefaultRegistry()

	c := cache.NewMemoryCache(cache.DefaultConfig())
	t.Cleanup(func() { c.Close() })

	store := shell.NewCacheStore(c, reg, &shell.StoreConfig{Logger: logger, TTL: time.Hour, KeyPrefix: "shell:state:"})
	csrf := security.NewCSRFProtection(&security.CSRFConfig{Cache: c, Logger: logger})

	mcfg := observability.DefaultMetricsConfig("test")
	mcfg.Logger = logger
	metrics := observability.NewMetrics(mcfg)

	h := handlers.NewHandler("Legal Desk", reg, store, csrf, metrics.Shell, logger)

	health := observability.DefaultHealthConfig()
	health.Logger = logger
	health.Checks["cache"] = observability.PingCheck("cache", c.Ping, false)

	r := NewRouter(&RouterConfig{Mode: "dev"}, logger,
		middlewares.Recovery(&middlewares.RecoveryConfig{Logger: logger}),
		observability.RequestID(&observability.RequestIDConfig{Logger: logger}),
		metrics.Middleware(),
	)
	RegisterRoutes(r, Dependencies{
		Handler:   h,
		Metrics:   metrics,
		Health:    health,
		Session:   &middlewares.SessionConfig{Logger: logger},
		RateLimit: &middlewares.RateLimitConfig{Cache: c, Logger: logger, Capacity: 100, RefillRate: 50},
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// browser keeps cookies and does not follow redirects.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
	token  string
}

func newBrowser(t *testing.T, srv *httptest.Server) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:    t,
		base: srv.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) get(path string) (int, string) {
	b.t.Helper()
	resp, err := b.client.Get(b.base + path)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)

	if m := tokenPattern.FindStringSubmatch(string(body)); m != nil {
		b.token = m[1]
	}
	return resp.StatusCode, string(body)
}

func (b *browser) post(path, returnTo string) *http.Response {
	b.t.Helper()
	form := url.Values{"csrf_token": {b.token}, "return": {returnTo}}
	resp, err := b.client.PostForm(b.base+path, form)
	require.NoError(b.t, err)
	resp.Body.Close()
	return resp
}

func (b *browser) nav(path string) dashboard.NavResponse {
	b.t.Helper()
	status, body := b.get("/api/nav?path=" + url.QueryEscape(path))
	require.Equal(b.t, http.StatusOK, status)

	var out dashboard.NavResponse
	require.NoError(b.t, json.Unmarshal([]byte(body), &out))
	return out
}

func openGroup(resp dashboard.NavResponse, id string) bool {
	for _, g := range resp.Groups {
		if g.ID == id {
			return g.Open
		}
	}
	return false
}

func TestJudgesPageMarksEntryActive(t *testing.T) {
	b := newBrowser(t, newTestServer(t))

	status, body := b.get("/judges")
	require.Equal(t, http.StatusOK, status)

	assert.Contains(t, body, `<a href="/judges" class="active rail-link" aria-current="page">`)
	assert.Equal(t, 1, strings.Count(body, `aria-current="page"`))
	assert.Contains(t, body, "<h1>Judge&#39;s Dashboard</h1>")
	assert.Contains(t, body, `data-accent="amber"`)
	assert.Contains(t, body, "<title>Judge&#39;s Dashboard · Legal Desk</title>")
	assert.NotEmpty(t, b.token)
}

func TestCollapseRendersIconRail(t *testing.T) {
	b := newBrowser(t, newTestServer(t))
	b.get("/judges")

	resp := b.post("/shell/collapse", "/judges")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/judges", resp.Header.Get("Location"))

	status, body := b.get("/judges")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `data-mode="collapsed"`)
	assert.Contains(t, body, "width:72px")
	assert.Contains(t, body, "margin-left:72px")
	assert.NotContains(t, body, "rail-groups")
	assert.Contains(t, body, `class="rail-tooltip"`)
	assert.Contains(t, body, "<h1>Judge&#39;s Dashboard</h1>")
}

func TestGroupExpansionSurvivesCollapse(t *testing.T) {
	b := newBrowser(t, newTestServer(t))
	b.get("/")

	b.post("/shell/groups/accountingReports/toggle", "/")
	assert.True(t, openGroup(b.nav("/"), nav.GroupAccountingReports))

	b.post("/shell/collapse", "/")
	collapsed := b.nav("/")
	assert.True(t, collapsed.Collapsed)
	assert.Equal(t, "collapsed", collapsed.Mode)
	assert.True(t, openGroup(collapsed, nav.GroupAccountingReports))

	b.post("/shell/collapse", "/")
	expanded := b.nav("/")
	assert.False(t, expanded.Collapsed)
	assert.True(t, openGroup(expanded, nav.GroupAccountingReports))

	_, body := b.get("/")
	assert.Contains(t, body, `id="group-accountingReports"`)
	assert.Contains(t, body, `href="/reports/accountingReports/profit-loss"`)
}

func TestGroupToggleIgnoredWhileCollapsed(t *testing.T) {
	b := newBrowser(t, newTestServer(t))
	b.get("/")

	b.post("/shell/collapse", "/")
	resp := b.post("/shell/groups/caseReports/toggle", "/")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	b.post("/shell/collapse", "/")
	assert.False(t, openGroup(b.nav("/"), nav.GroupCaseReports))
}

func TestUnknownGroupToggleLeavesStateAlone(t *testing.T) {
	b := newBrowser(t, newTestServer(t))
	b.get("/")

	b.post("/shell/groups/noSuchGroup/toggle", "/")

	resp := b.nav("/")
	require.Len(t, resp.Groups, 3)
	for _, g := range resp.Groups {
		assert.False(t, g.Open, g.ID)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	srv := newTestServer(t)
	alice := newBrowser(t, srv)
	bob := newBrowser(t, srv)
	alice.get("/")
	bob.get("/")

	alice.post("/shell/collapse", "/")

	assert.True(t, alice.nav("/").Collapsed)
	assert.False(t, bob.nav("/").Collapsed)
}

func TestToggleRequiresToken(t *testing.T) {
	b := newBrowser(t, newTestServer(t))
	b.get("/")
	b.token = "forged"

	resp := b.post("/shell/collapse", "/")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, b.nav("/").Collapsed)
}

func TestToggleRedirectStaysLocal(t *testing.T) {
	b := newBrowser(t, newTestServer(t))
	b.get("/")

	for _, target := range []string{"//evil.example", "https://evil.example/", "judges", ""} {
		resp := b.post("/shell/collapse", target)
		assert.Equal(t, "/", resp.Header.Get("Location"), "return=%q", target)
	}
}

func TestUnknownPathRendersDefaultHeader(t *testing.T) {
	b := newBrowser(t, newTestServer(t))

	status, body := b.get("/does-not-exist")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "<h1>Dashboard</h1>")
	assert.Contains(t, body, "Legal management system dashboard")
	assert.Contains(t, body, "Nothing is published at /does-not-exist yet.")
	assert.NotContains(t, body, `aria-current="page"`)
}

func TestReportPageAndExport(t *testing.T) {
	b := newBrowser(t, newTestServer(t))
	b.get("/")
	b.post("/shell/groups/accountingReports/toggle", "/")

	status, body := b.get("/reports/accountingReports/balance-sheet")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `data-has-active="true"`)
	assert.Contains(t, body, `<a href="/reports/accountingReports/balance-sheet" class="active rail-sublink" aria-current="page">`)
	assert.Contains(t, body, "<h1>Dashboard</h1>")

	resp, err := b.client.Get(b.base + content.ExportPath(nav.GroupAccountingReports, "balance-sheet"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, content.XLSXContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "accountingReports-balance-sheet.xlsx")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Balance Sheet"}, f.GetSheetList())

	status, _ = b.get("/reports/accountingReports/nope/export.xlsx")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHeaderAPI(t *testing.T) {
	b := newBrowser(t, newTestServer(t))

	status, body := b.get("/api/header?path=/judges")
	require.Equal(t, http.StatusOK, status)

	var h nav.HeaderInfo
	require.NoError(t, json.Unmarshal([]byte(body), &h))
	assert.Equal(t, "Judge's Dashboard", h.Title)
	assert.Equal(t, nav.IconGavel, h.Icon)
	assert.Equal(t, nav.ColorAmber, h.AccentColor)

	status, body = b.get("/api/header?path=/judges/")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal([]byte(body), &h))
	assert.Equal(t, "Dashboard", h.Title)

	status, _ = b.get("/api/header")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestNavAPIMarksActive(t *testing.T) {
	b := newBrowser(t, newTestServer(t))

	resp := b.nav("/reports/caseReports/court-deadlines")
	assert.Equal(t, 256, resp.Width)

	for _, e := range resp.Entries {
		assert.False(t, e.Active, e.Path)
	}
	for _, g := range resp.Groups {
		assert.Equal(t, g.ID == nav.GroupCaseReports, g.HasActive, g.ID)
	}
}

func TestOperationalEndpoints(t *testing.T) {
	b := newBrowser(t, newTestServer(t))
	b.get("/")
	b.post("/shell/collapse", "/")

	status, body := b.get("/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"cache"`)

	status, _ = b.get("/live")
	assert.Equal(t, http.StatusOK, status)

	status, body = b.get("/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `test_shell_toggles_total{action="collapse"} 1`)
	assert.Contains(t, body, `route="GET /{path...}"`)
}

func TestRouteConflictPanicsInDev(t *testing.T) {
	r := NewRouter(&RouterConfig{Mode: "dev"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	noop := func(http.ResponseWriter, *http.Request) {}

	r.Register(&Route{Method: "get", Path: "/x", HandlerFunc: noop})
	assert.Equal(t, []string{"GET /x"}, r.Routes())
	assert.Panics(t, func() {
		r.Register(&Route{Method: http.MethodGet, Path: "/x", HandlerFunc: noop})
	})
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) MiddlewaresType {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := NewRouter(nil, slog.New(slog.NewTextHandler(io.Discard, nil)), mark("global"))
	r.RegisterGroup(&RouteGroup{
		Middlewares: []MiddlewaresType{mark("group")},
		Routes: []*Route{{
			Method:      http.MethodGet,
			Path:        "/x",
			Middlewares: []MiddlewaresType{mark("route")},
			HandlerFunc: func(http.ResponseWriter, *http.Request) { order = append(order, "handler") },
		}},
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, []string{"global", "group", "route", "handler"}, order)
}
