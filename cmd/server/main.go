package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"os"

	"legal_dashboard/internal/cache"
	"legal_dashboard/internal/config"
	"legal_dashboard/internal/handlers"
	"legal_dashboard/internal/middlewares"
	"legal_dashboard/internal/nav"
	"legal_dashboard/internal/observability"
	"legal_dashboard/internal/router"
	"legal_dashboard/internal/security"
	"legal_dashboard/internal/server"
	"legal_dashboard/internal/shell"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.LoadConfig(logger)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsDevelopment() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
	}

	// Shell state and CSRF tokens share one backend: Redis when configured
	// and reachable, memory otherwise.
	cacheCfg := cache.DefaultConfig()
	cacheCfg.DefaultTTL = cfg.Session.TTL

	redisCfg := cache.DefaultRedisConfig()
	redisCfg.Config = cacheCfg
	redisCfg.Addr = cfg.Redis.Addr
	redisCfg.Password = cfg.Redis.Password
	redisCfg.DB = cfg.Redis.DB

	store := cache.NewFallbackCache(&cache.FallbackConfig{
		Redis:  redisCfg,
		Memory: cacheCfg,
		Logger: logger,
	})

	registry := nav.DefaultRegistry()

	shellStore := shell.NewCacheStore(store, registry, &shell.StoreConfig{
		Logger:    logger,
		TTL:       cfg.Session.TTL,
		KeyPrefix: "shell:state:",
	})

	csrf := security.NewCSRFProtection(&security.CSRFConfig{
		Cache:         store,
		TokenLifetime: cfg.Session.TTL,
		Logger:        logger,
	})

	metricsCfg := observability.DefaultMetricsConfig(cfg.Metrics.Namespace)
	metricsCfg.Logger = logger
	metrics := observability.NewMetrics(metricsCfg)

	h := handlers.NewHandler(cfg.App.Name, registry, shellStore, csrf, metrics.Shell, logger)

	health := observability.DefaultHealthConfig()
	health.Logger = logger
	health.Version = cfg.App.Version
	// Losing Redis only degrades the shell: state falls back to memory.
	health.Checks["cache"] = observability.PingCheck("cache", store.Ping, store.HasPrimary())

	mode := "prod"
	if cfg.IsDevelopment() {
		mode = "dev"
	}

	loggerCfg := middlewares.DefaultLoggerConfig()
	loggerCfg.Logger = logger

	securityCfg := middlewares.DefaultSecurityConfig()
	securityCfg.Logger = logger

	r := router.NewRouter(&router.RouterConfig{Mode: mode}, logger,
		middlewares.Recovery(&middlewares.RecoveryConfig{Logger: logger, Development: cfg.IsDevelopment()}),
		observability.RequestID(&observability.RequestIDConfig{Logger: logger}),
		middlewares.Logger(loggerCfg),
		middlewares.Security(securityCfg),
		metrics.Middleware(),
	)

	rateCfg := middlewares.DefaultRateLimitConfig()
	rateCfg.Cache = store
	rateCfg.Logger = logger

	router.RegisterRoutes(r, router.Dependencies{
		Handler: h,
		Metrics: metrics,
		Health:  health,
		Session: &middlewares.SessionConfig{
			Logger:     logger,
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.Session.Secure,
		},
		RateLimit: rateCfg,
	})

	srvCfg := server.ConfigFor(cfg.App.Environment, net.JoinHostPort("", cfg.Server.Port))
	srvCfg.Logger = logger
	if cfg.TLS.Enabled {
		srvCfg.TLSCertFile = cfg.TLS.CertFile
		srvCfg.TLSKeyFile = cfg.TLS.KeyFile
	}

	logger.Info("Starting server",
		"app", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"address", cfg.GetServerAddress(),
		"routes", len(r.Routes()),
	)

	resources := []server.Resource{server.NewCacheResource("shell-cache", store)}
	if err := server.Start(context.Background(), r, srvCfg, resources); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
