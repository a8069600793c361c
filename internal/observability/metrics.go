package observability

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsConfig holds configuration for Prometheus metrics middleware
type MetricsConfig struct {
	// Logger for structured logging
	Logger *slog.Logger

	// Namespace for metrics (e.g., "legal_dashboard")
	Namespace string

	// Subsystem for HTTP metrics
	Subsystem string

	// Buckets for response time histogram
	Buckets []float64

	// SkipPaths defines paths that should not be metered
	SkipPaths []string

	// Registry receives every collector. A fresh registry is created when nil,
	// so separate instances never collide on registration.
	Registry *prometheus.Registry
}

// DefaultMetricsConfig returns a default metrics configuration
func DefaultMetricsConfig(namespace string) *MetricsConfig {
	return &MetricsConfig{
		Namespace: namespace,
		Subsystem: "http",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		SkipPaths: []string{"/metrics", "/health", "/live"},
	}
}

// Metrics holds the HTTP collectors and the shell counters on one registry.
type Metrics struct {
	config   *MetricsConfig
	logger   *slog.Logger
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	responseSize    *prometheus.HistogramVec
	activeRequests  prometheus.Gauge

	// Shell counts sidebar interactions.
	Shell *ShellMetrics
}

// NewMetrics creates and registers Prometheus metrics
func NewMetrics(config *MetricsConfig) *Metrics {
	if config == nil {
		config = DefaultMetricsConfig("app")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reg := config.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	logger.Info("initializing prometheus metrics",
		"namespace", config.Namespace,
		"subsystem", config.Subsystem,
	)

	factory := promauto.With(reg)

	return &Metrics{
		config:   config,
		logger:   logger,
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: config.Namespace,
				Subsystem: config.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: config.Namespace,
				Subsystem: config.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   config.Buckets,
			},
			[]string{"method", "route", "status"},
		),
		responseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: config.Namespace,
				Subsystem: config.Subsystem,
				Name:      "response_size_bytes",
				Help:      "HTTP response size in bytes",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 6), // 100B to 10MB
			},
			[]string{"method", "route", "status"},
		),
		activeRequests: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: config.Namespace,
				Subsystem: config.Subsystem,
				Name:      "requests_active",
				Help:      "Number of active HTTP requests",
			},
		),
		Shell: newShellMetrics(factory, config.Namespace),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware returns a Prometheus metrics middleware
func (m *Metrics) Middleware() func(next http.Handler) http.Handler {
	m.logger.Debug("metrics middleware initialized")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, path := range m.config.SkipPaths {
				if r.URL.Path == path {
					next.ServeHTTP(w, r)
					return
				}
			}

			m.activeRequests.Inc()
			defer m.activeRequests.Dec()

			start := time.Now()
			rw := &metricsResponseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			// The mux records the matched pattern on the request; raw paths
			// would give every report its own series.
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(rw.statusCode)
			duration := time.Since(start).Seconds()

			m.requestsTotal.WithLabelValues(r.Method, route, status).Inc()
			m.requestDuration.WithLabelValues(r.Method, route, status).Observe(duration)
			m.responseSize.WithLabelValues(r.Method, route, status).Observe(float64(rw.bytesWritten))
		})
	}
}

// metricsResponseWriter wraps http.ResponseWriter to capture status code and bytes written
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *metricsResponseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// Handler serves the registry in the Prometheus exposition format.
// Endpoint: GET /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ShellMetrics counts sidebar state transitions. A nil *ShellMetrics records nothing.
type ShellMetrics struct {
	Toggles           *prometheus.CounterVec
	IgnoredToggles    *prometheus.CounterVec
	HeaderResolutions *prometheus.CounterVec
}

func newShellMetrics(factory promauto.Factory, namespace string) *ShellMetrics {
	return &ShellMetrics{
		Toggles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "shell",
				Name:      "toggles_total",
				Help:      "Applied sidebar toggles by action",
			},
			[]string{"action"},
		),
		IgnoredToggles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "shell",
				Name:      "toggles_ignored_total",
				Help:      "Group toggles that left the state unchanged, by reason",
			},
			[]string{"reason"},
		),
		HeaderResolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "shell",
				Name:      "header_resolutions_total",
				Help:      "Header lookups by whether the path matched a known route",
			},
			[]string{"matched"},
		),
	}
}

// Toggled records an applied toggle ("collapse" or "group").
func (s *ShellMetrics) Toggled(action string) {
	if s == nil {
		return
	}
	s.Toggles.WithLabelValues(action).Inc()
}

// Ignored records a toggle that had no effect.
func (s *ShellMetrics) Ignored(reason string) {
	if s == nil {
		return
	}
	s.IgnoredToggles.WithLabelValues(reason).Inc()
}

// HeaderResolved records one header lookup.
func (s *ShellMetrics) HeaderResolved(matched bool) {
	if s == nil {
		return
	}
	s.HeaderResolutions.WithLabelValues(strconv.FormatBool(matched)).Inc()
}
