// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// Used when no database is configured, and in tests.
//
// Characteristics:
//   - Stores session copies keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordle/apps/solver/internal/session"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("store: not found")

// Store defines the persistence interface for solver sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *session.Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*session.Session, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex                // guards sessions map
	sessions map[string]*session.Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*session.Session)}
}

// Save stores a copy so later caller mutations do not leak in.
func (m *memory) Save(ctx context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s.Clone()
	return nil
}

// Get returns a copy of the stored session.
func (m *memory) Get(ctx context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s.Clone(), nil
	}
	return nil, ErrNotFound
}
