package shell

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"legal_dashboard/internal/cache"
	"legal_dashboard/internal/nav"
)

// Store persists one State per shell session for the session's lifetime.
type Store interface {
	Load(ctx context.Context, sessionID string) (*State, error)
	Save(ctx context.Context, sessionID string, s *State) error
	Update(ctx context.Context, sessionID string, fn func(*State)) (*State, error)
}

// StoreConfig holds configuration for CacheStore
type StoreConfig struct {
	// Logger for structured logging
	Logger *slog.Logger

	// TTL of a stored state; matches the session cookie lifetime
	TTL time.Duration

	// KeyPrefix namespaces state keys inside the cache
	KeyPrefix string
}

// DefaultStoreConfig returns a default store configuration
func DefaultStoreConfig() *StoreConfig {
	return &StoreConfig{
		TTL:       24 * time.Hour,
		KeyPrefix: "shell:state:",
	}
}

// CacheStore keeps shell state in a cache.Cache as JSON.
type CacheStore struct {
	cache    cache.Cache
	registry *nav.Registry
	config   *StoreConfig
	logger   *slog.Logger

	// mu serialises Update so a load-mutate-save cycle is not interleaved within the process
	mu sync.Mutex
}

// NewCacheStore creates a store over c for the groups in reg.
func NewCacheStore(c cache.Cache, reg *nav.Registry, config *StoreConfig) *CacheStore {
	if config == nil {
		config = DefaultStoreConfig()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &CacheStore{
		cache:    c,
		registry: reg,
		config:   config,
		logger:   logger,
	}
}

// Load returns the session's state, or a fresh State when none is stored or the stored
// value is unreadable. The result always satisfies the key-set invariant.
func (s *CacheStore) Load(ctx context.Context, sessionID string) (*State, error) {
	data, err := s.cache.Get(ctx, s.key(sessionID))
	if err != nil {
		if cache.IsNotFound(err) {
			return NewState(s.registry), nil
		}
		return nil, fmt.Errorf("failed to load shell state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Warn("discarding unreadable shell state", "session_id", sessionID, "error", err)
		return NewState(s.registry), nil
	}

	state.Normalize(s.registry)
	return &state, nil
}

// Save stores the session's state with the configured TTL.
func (s *CacheStore) Save(ctx context.Context, sessionID string, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal shell state: %w", err)
	}

	if err := s.cache.Set(ctx, s.key(sessionID), data, s.config.TTL); err != nil {
		return fmt.Errorf("failed to save shell state: %w", err)
	}

	return nil
}

// Update loads the session's state, applies fn and saves the result. A state that cannot
// be loaded is replaced by a fresh one.
func (s *CacheStore) Update(ctx context.Context, sessionID string, fn func(*State)) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.Load(ctx, sessionID)
	if err != nil {
		s.logger.Warn("shell state unavailable, starting fresh", "session_id", sessionID, "error", err)
		state = NewState(s.registry)
	}

	fn(state)

	if err := s.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}

	return state, nil
}

func (s *CacheStore) key(sessionID string) string {
	return s.config.KeyPrefix + sessionID
}
