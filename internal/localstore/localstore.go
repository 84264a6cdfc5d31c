package localstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Keys under which the storefront persists its aggregates.
const (
	KeyCatalog     = "catalog"
	KeyCollections = "collections"
	KeyCart        = "cart"
	KeyOrders      = "orders"
	KeyContent     = "pageContent"
	KeyOwner       = "isOwnerLoggedIn"
)

// Backend is a synchronous whole-value key-value store.
type Backend interface {
	// Get returns the stored bytes and whether the key exists.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Open builds the backend selected by driver rooted at dir.
func Open(driver, dir string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverFile:
		return NewFile(dir)
	case DriverSQLite:
		return NewSQLite(dir)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown local driver %q", driver)
	}
}

// Store is the best-effort JSON view over a Backend. Failures are logged and
// never returned, so callers always get a usable value.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// New wraps backend. A nil logger uses slog.Default.
func New(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{backend: backend, logger: logger}
}

// Get decodes the value under key into dest and reports whether it did.
// Missing keys, read errors and malformed JSON all leave dest untouched.
func (s *Store) Get(key string, dest any) bool {
	if s == nil || s.backend == nil {
		return false
	}
	raw, ok, err := s.backend.Get(key)
	if err != nil {
		s.logger.Warn("local store read failed", "key", key, "error", err)
		return false
	}
	if !ok || len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Warn("local store value malformed", "key", key, "error", err)
		return false
	}
	return true
}

// Set replaces the value under key.
func (s *Store) Set(key string, value any) {
	if s == nil || s.backend == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("local store encode failed", "key", key, "error", err)
		return
	}
	if err := s.backend.Set(key, raw); err != nil {
		s.logger.Warn("local store write failed", "key", key, "error", err)
	}
}

// Close releases the backend.
func (s *Store) Close() error {
	if s == nil || s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

// Memory is an in-process Backend.
type Memory struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemory returns an empty in-process backend.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Close() error { return nil }
