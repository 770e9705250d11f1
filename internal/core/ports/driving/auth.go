package driving

import (
	"context"

	"github.com/goodeyes/frontdesk/internal/core/domain"
)

// AuthService manages the logged-in session.
type AuthService interface {
	// Login authenticates against the backend and stores the session.
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)

	// Logout forgets the stored session.
	Logout() error

	// Session returns the stored session, or domain.ErrAuthRequired.
	Session() (*domain.Session, error)

	// Permissions returns the current user's capability flags.
	// With no session every flag is false.
	Permissions() domain.Permissions
}
