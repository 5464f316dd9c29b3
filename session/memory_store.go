package session

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	errs "github.com/jrsteele09/go-tribe-client/internal/errors"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory implementation of Store
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Save creates or replaces a session
func (m *MemoryStore) Save(_ context.Context, id string, session Session) error {
	if id == "" {
		return fmt.Errorf("session id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[id] = clone(session)
	return nil
}

// Get retrieves a session, dropping it when it has outlived its expiry
func (m *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, errs.ErrSessionNotFound
	}

	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return Session{}, errs.ErrSessionNotFound
	}

	if session.Expired(m.now()) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return Session{}, errs.ErrSessionExpired
	}
	return clone(session), nil
}

// Delete removes a session
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id) // Already doesn't exist, no error
	return nil
}

// Len reports how many sessions are held.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// clone copies the slices so callers cannot mutate stored sessions.
func clone(s Session) Session {
	s.User = slices.Clone(s.User)
	s.Genesets = slices.Clone(s.Genesets)
	return s
}
