package memory

import (
	"slices"
	"sync"

	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
type SessionStore struct {
	mu      sync.RWMutex
	session *domain.Session
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Load returns a copy of the stored session.
func (s *SessionStore) Load() (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, domain.ErrAuthRequired
	}
	cp := *s.session
	cp.Roles = slices.Clone(s.session.Roles)
	return &cp, nil
}

// Save replaces the stored session with a copy of session.
func (s *SessionStore) Save(session *domain.Session) error {
	if session == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *session
	cp.Roles = slices.Clone(session.Roles)
	s.session = &cp
	return nil
}

// Clear removes the stored session.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
