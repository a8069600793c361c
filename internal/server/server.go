package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Config holds HTTP server configuration
type Config struct {
	// Server address (host:port)
	Addr string

	// Logger for structured logging
	Logger *slog.Logger

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
	MaxHeaderBytes int

	// TLS is used when both files are set
	TLSCertFile string
	TLSKeyFile  string

	// ShutdownTimeout bounds the graceful shutdown of the server and its resources
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a default server configuration
func DefaultConfig(addr string) *Config {
	return &Config{
		Addr:              addr,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second, // report exports are buffered before writing
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ShutdownTimeout:   30 * time.Second,
	}
}

// ProductionConfig tightens timeouts for internet-facing deployments
func ProductionConfig(addr string) *Config {
	cfg := DefaultConfig(addr)
	cfg.ReadTimeout = 10 * time.Second
	cfg.IdleTimeout = 120 * time.Second
	return cfg
}

// DevelopmentConfig relaxes timeouts so a debugger can pause a handler
func DevelopmentConfig(addr string) *Config {
	cfg := DefaultConfig(addr)
	cfg.ReadTimeout = 60 * time.Second
	cfg.WriteTimeout = 60 * time.Second
	cfg.IdleTimeout = 300 * time.Second
	cfg.ShutdownTimeout = 5 * time.Second
	return cfg
}

// ConfigFor picks the preset matching the application environment.
func ConfigFor(environment, addr string) *Config {
	switch environment {
	case "production":
		return ProductionConfig(addr)
	case "development":
		return DevelopmentConfig(addr)
	default:
		return DefaultConfig(addr)
	}
}

// TLSEnabled reports whether the server should terminate TLS itself.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// New creates a new HTTP server with the given configuration
func New(handler http.Handler, config *Config) *http.Server {
	if config == nil {
		config = DefaultConfig(":8080")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	srv := &http.Server{
		Addr:              config.Addr,
		Handler:           handler,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
		MaxHeaderBytes:    config.MaxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("http server configured",
		"addr", config.Addr,
		"read_timeout", config.ReadTimeout.String(),
		"write_timeout", config.WriteTimeout.String(),
		"idle_timeout", config.IdleTimeout.String(),
		"tls", config.TLSEnabled(),
	)

	return srv
}

// Start listens on config.Addr and serves until ctx is cancelled or a
// shutdown signal arrives, then closes the server and every resource.
func Start(ctx context.Context, handler http.Handler, config *Config, resources []Resource) error {
	if config == nil {
		config = DefaultConfig(":8080")
	}

	ln, err := net.Listen("tcp", config.Addr)
	if err != nil {
		return err
	}

	return Serve(ctx, New(handler, config), ln, config, resources)
}

// Serve runs srv on an existing listener. It is split from Start so tests can
// bind an ephemeral port.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, config *Config, resources []Resource) error {
	if config == nil {
		config = DefaultConfig(ln.Addr().String())
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sm := NewShutdownManager(&ShutdownConfig{
		Logger:  logger,
		Timeout: config.ShutdownTimeout,
		Signals: DefaultShutdownConfig().Signals,
		OnShutdownStart: func() {
			logger.Info("shutdown initiated, stopping server gracefully")
		},
		OnShutdownComplete: func() {
			logger.Info("shutdown complete")
		},
	})

	// Resources close in reverse order, so the server stops accepting
	// requests before the backends it depends on go away.
	for _, resource := range resources {
		sm.Register(resource)
	}
	sm.Register(NewHTTPServerResource("http-server", srv))

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", "addr", ln.Addr().String(), "tls", config.TLSEnabled())

		var err error
		if config.TLSEnabled() {
			err = srv.ServeTLS(ln, config.TLSCertFile, config.TLSKeyFile)
		} else {
			err = srv.Serve(ln)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	return sm.Wait(ctx, serveErr)
}
