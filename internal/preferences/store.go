// Package preferences persists small string preferences under fixed keys.
package preferences

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cristianoliveira/csf-dashboard/internal/colors"
	"github.com/cristianoliveira/csf-dashboard/internal/config"
)

var (
	// ErrEmptyKey indicates a blank preference key.
	ErrEmptyKey = errors.New("preference key cannot be empty")
	// ErrClosed indicates use of a store after Close.
	ErrClosed = errors.New("preference store is closed")
)

const (
	// BackendTOML selects the TOML file store.
	BackendTOML = "toml"
	// BackendSQLite selects the SQLite store.
	BackendSQLite = "sqlite"
	// BackendRedis selects the Redis store.
	BackendRedis = "redis"
	// BackendMemory selects the in-process store.
	BackendMemory = "memory"

	preferencesFileName = "preferences.toml"
	preferencesDBName   = "preferences.db"
)

// Store is a string key-value slot store.
type Store interface {
	// Get returns the stored value and whether it was present.
	Get(key string) (value string, ok bool, err error)
	// Set writes value under key immediately.
	Set(key, value string) error
	// Close releases the store's resources.
	Close() error
}

// NewFromConfig opens the store selected by preferences_backend. A backend
// that cannot be opened degrades to a MemoryStore with a warning, so the
// dashboard still runs without persistence.
func NewFromConfig() Store {
	backend := config.Get("preferences_backend", BackendTOML)
	store, err := NewForBackend(backend)
	if err != nil {
		colors.Warning(fmt.Sprintf("preferences backend %q unavailable, falling back to memory: %v", backend, err))
		return NewMemoryStore()
	}
	return store
}

// NewForBackend opens the named backend using paths and addresses from config.
func NewForBackend(backend string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendTOML:
		return NewFileStore(configPath(preferencesFileName))
	case BackendSQLite:
		return NewSQLiteStore(config.Get("preferences_db_path", statePath(preferencesDBName)))
	case BackendRedis:
		return NewRedisStore(RedisOptions{
			Addr:     config.Get("redis_addr", "127.0.0.1:6379"),
			Password: config.Get("redis_password", ""),
			DB:       config.GetInt("redis_db", 0),
		})
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown preferences backend %q", backend)
	}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}

// MemoryStore keeps preferences in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
