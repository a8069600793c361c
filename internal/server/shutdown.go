package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"legal_dashboard/internal/cache"
)

// ShutdownConfig holds configuration for graceful shutdown
type ShutdownConfig struct {
	// Logger for structured logging
	Logger *slog.Logger

	// Timeout for graceful shutdown
	Timeout time.Duration

	// Signals to listen for (default: SIGINT, SIGTERM, SIGQUIT)
	Signals []os.Signal

	// OnShutdownStart is called when shutdown begins
	OnShutdownStart func()

	// OnShutdownComplete is called when shutdown completes
	OnShutdownComplete func()
}

// DefaultShutdownConfig returns a default shutdown configuration
func DefaultShutdownConfig() *ShutdownConfig {
	return &ShutdownConfig{
		Timeout: 30 * time.Second,
		Signals: []os.Signal{
			syscall.SIGINT,
			syscall.SIGTERM, // container stop
			syscall.SIGQUIT,
		},
	}
}

// Resource represents a resource that needs cleanup during shutdown
type Resource interface {
	Name() string
	Close(ctx context.Context) error
}

// ShutdownManager closes registered resources in reverse registration order.
type ShutdownManager struct {
	config    *ShutdownConfig
	logger    *slog.Logger
	resources []Resource
	mu        sync.RWMutex
}

// NewShutdownManager creates a new shutdown manager
func NewShutdownManager(config *ShutdownConfig) *ShutdownManager {
	if config == nil {
		config = DefaultShutdownConfig()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ShutdownManager{
		config:    config,
		logger:    logger,
		resources: make([]Resource, 0),
	}
}

// Register adds a resource to be cleaned up during shutdown
func (sm *ShutdownManager) Register(resource Resource) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.resources = append(sm.resources, resource)
	sm.logger.Debug("resource registered for shutdown", "resource", resource.Name())
}

// Wait blocks until ctx is done, a shutdown signal is received or serveErr
// yields an error, then shuts everything down. A serve failure is returned
// alongside any shutdown error.
func (sm *ShutdownManager) Wait(ctx context.Context, serveErr <-chan error) error {
	if len(sm.config.Signals) > 0 {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, sm.config.Signals...)
		defer stop()
	}

	var cause error
	select {
	case <-ctx.Done():
		sm.logger.Info("shutdown requested", "reason", context.Cause(ctx).Error())
	case err, ok := <-serveErr:
		if ok && err != nil {
			sm.logger.Error("server failed", "error", err)
			cause = err
		}
	}

	if sm.config.OnShutdownStart != nil {
		sm.config.OnShutdownStart()
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sm.config.Timeout)
	defer cancel()

	err := sm.Shutdown(shutdownCtx)

	if sm.config.OnShutdownComplete != nil {
		sm.config.OnShutdownComplete()
	}

	return errors.Join(cause, err)
}

// Shutdown closes every registered resource, last registered first.
func (sm *ShutdownManager) Shutdown(ctx context.Context) error {
	sm.mu.RLock()
	resources := make([]Resource, len(sm.resources))
	copy(resources, sm.resources)
	sm.mu.RUnlock()

	sm.logger.Info("initiating graceful shutdown",
		"timeout", sm.config.Timeout.String(),
		"resources", len(resources),
	)

	var errs []error
	for i := len(resources) - 1; i >= 0; i-- {
		r := resources[i]
		start := time.Now()

		if err := r.Close(ctx); err != nil {
			sm.logger.Error("failed to close resource",
				"resource", r.Name(),
				"error", err,
				"duration", time.Since(start).String(),
			)
			errs = append(errs, fmt.Errorf("close %s: %w", r.Name(), err))
			continue
		}

		sm.logger.Info("resource closed",
			"resource", r.Name(),
			"duration", time.Since(start).String(),
		)
	}

	return errors.Join(errs...)
}

// HTTPServerResource wraps an HTTP server for graceful shutdown
type HTTPServerResource struct {
	server *http.Server
	name   string
}

// NewHTTPServerResource creates a new HTTP server resource
func NewHTTPServerResource(name string, server *http.Server) *HTTPServerResource {
	return &HTTPServerResource{
		server: server,
		name:   name,
	}
}

func (h *HTTPServerResource) Name() string {
	return h.name
}

func (h *HTTPServerResource) Close(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// CacheResource closes the shell state backend
type CacheResource struct {
	cache cache.Cache
	name  string
}

// NewCacheResource creates a new cache resource
func NewCacheResource(name string, c cache.Cache) *CacheResource {
	return &CacheResource{
		cache: c,
		name:  name,
	}
}

func (c *CacheResource) Name() string {
	return c.name
}

// Close ignores ctx; the cache clients close synchronously.
func (c *CacheResource) Close(ctx context.Context) error {
	return c.cache.Close()
}

// CustomResource wraps a custom cleanup function
type CustomResource struct {
	name      string
	closeFunc func(ctx context.Context) error
}

// NewCustomResource creates a new custom resource
func NewCustomResource(name string, closeFunc func(ctx context.Context) error) *CustomResource {
	return &CustomResource{
		name:      name,
		closeFunc: closeFunc,
	}
}

func (c *CustomResource) Name() string {
	return c.name
}

func (c *CustomResource) Close(ctx context.Context) error {
	return c.closeFunc(ctx)
}
