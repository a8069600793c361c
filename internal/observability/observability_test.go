package observability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDGeneratesUUID(t *testing.T) {
	var seen string
	h := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDKeepsValidUpstreamID(t *testing.T) {
	id := uuid.NewString()
	var seen string
	h := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", id)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, id, seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "not-an-id\n")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.NotEqual(t, "not-an-id\n", seen)
}

func TestShellMetrics(t *testing.T) {
	m := NewMetrics(DefaultMetricsConfig("test"))

	m.Shell.Toggled("collapse")
	m.Shell.Toggled("collapse")
	m.Shell.Ignored("collapsed")
	m.Shell.HeaderResolved(true)
	m.Shell.HeaderResolved(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Shell.Toggles.WithLabelValues("collapse")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Shell.IgnoredToggles.WithLabelValues("collapsed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Shell.HeaderResolutions.WithLabelValues("false")))

	var nilShell *ShellMetrics
	assert.NotPanics(t, func() { nilShell.Toggled("group") })
}

func TestMetricsInstancesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(DefaultMetricsConfig("test"))
		NewMetrics(DefaultMetricsConfig("test"))
	})
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	m := NewMetrics(DefaultMetricsConfig("test"))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /reports/{group}/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	h := m.Middleware()(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/reports/a/b", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/reports/c/d", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.requestsTotal.WithLabelValues("GET", "GET /reports/{group}/{slug}", "200"),
	))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "test_http_requests_total")
}

func TestHealthHandler(t *testing.T) {
	cfg := DefaultHealthConfig()
	cfg.Version = "1.2.3"
	cfg.Checks["cache"] = PingCheck("cache", func(context.Context) error { return nil }, false)

	rec := httptest.NewRecorder()
	HealthHandler(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, StatusHealthy, resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, StatusHealthy, resp.Checks["cache"].Status)
}

func TestHealthHandlerStatuses(t *testing.T) {
	failing := func(context.Context) error { return errors.New("connection refused") }

	cfg := DefaultHealthConfig()
	cfg.Checks["redis"] = PingCheck("redis", failing, true)

	rec := httptest.NewRecorder()
	HealthHandler(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)

	cfg.Checks["cache"] = PingCheck("cache", failing, false)
	rec = httptest.NewRecorder()
	HealthHandler(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthCheckTimeout(t *testing.T) {
	cfg := DefaultHealthConfig()
	cfg.CheckTimeout = 20 * time.Millisecond
	cfg.Checks["slow"] = func(ctx context.Context) (HealthStatus, string, error) {
		time.Sleep(time.Second)
		return StatusHealthy, "", nil
	}

	rec := httptest.NewRecorder()
	HealthHandler(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Health check timed out")
}

func TestLivenessHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"alive":true`)
}
