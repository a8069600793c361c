package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal_dashboard/internal/cache"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConfigFor(t *testing.T) {
	assert.Equal(t, 60*time.Second, ConfigFor("development", ":1").WriteTimeout)
	assert.Equal(t, 120*time.Second, ConfigFor("production", ":1").IdleTimeout)
	assert.Equal(t, DefaultConfig(":1"), ConfigFor("staging", ":1"))

	cfg := DefaultConfig(":1")
	assert.False(t, cfg.TLSEnabled())
	cfg.TLSCertFile = "cert.pem"
	assert.False(t, cfg.TLSEnabled())
	cfg.TLSKeyFile = "key.pem"
	assert.True(t, cfg.TLSEnabled())
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var mu sync.Mutex
	var closed []string
	record := func(name string) Resource {
		return NewCustomResource(name, func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			closed = append(closed, name)
			return nil
		})
	}

	cfg := DefaultConfig(ln.Addr().String())
	cfg.Logger = quietLogger()
	cfg.ShutdownTimeout = 2 * time.Second

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, New(handler, cfg), ln, cfg, []Resource{record("state"), record("tokens")})
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"tokens", "state"}, closed)

	_, err = http.Get("http://" + ln.Addr().String() + "/")
	assert.Error(t, err)
}

func TestShutdownCollectsErrors(t *testing.T) {
	sm := NewShutdownManager(&ShutdownConfig{Logger: quietLogger(), Timeout: time.Second})

	boom := errors.New("boom")
	var reached bool
	sm.Register(NewCustomResource("first", func(ctx context.Context) error {
		reached = true
		return nil
	}))
	sm.Register(NewCustomResource("second", func(ctx context.Context) error {
		return boom
	}))

	err := sm.Shutdown(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "close second")
	assert.True(t, reached, "a failing resource must not stop the rest from closing")
}

func TestWaitReturnsServeError(t *testing.T) {
	sm := NewShutdownManager(&ShutdownConfig{Logger: quietLogger(), Timeout: time.Second})

	var started, completed bool
	sm.config.OnShutdownStart = func() { started = true }
	sm.config.OnShutdownComplete = func() { completed = true }

	serveErr := make(chan error, 1)
	listenErr := errors.New("address in use")
	serveErr <- listenErr

	err := sm.Wait(context.Background(), serveErr)
	assert.ErrorIs(t, err, listenErr)
	assert.True(t, started)
	assert.True(t, completed)
}

func TestCacheResource(t *testing.T) {
	mem := cache.NewMemoryCache(cache.DefaultConfig())
	r := NewCacheResource("shell-state", mem)

	assert.Equal(t, "shell-state", r.Name())
	assert.NoError(t, r.Close(context.Background()))
	// closing twice is harmless
	assert.NoError(t, r.Close(context.Background()))
}
