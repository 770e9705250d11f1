package driven

import "github.com/goodeyes/frontdesk/internal/core/domain"

// SessionStore persists the login session between runs.
type SessionStore interface {
	// Load returns the stored session, or domain.ErrAuthRequired when none exists.
	Load() (*domain.Session, error)

	// Save replaces the stored session.
	Save(session *domain.Session) error

	// Clear removes the stored session. Clearing an empty store is not an error.
	Clear() error
}
