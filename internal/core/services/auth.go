package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/ports/driven"
	"github.com/goodeyes/frontdesk/internal/core/ports/driving"
	"github.com/goodeyes/frontdesk/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// AuthService logs users in against the backend and keeps their session.
type AuthService struct {
	backend  driven.Backend
	sessions driven.SessionStore
	now      func() time.Time
}

// NewAuthService creates a new auth service.
func NewAuthService(backend driven.Backend, sessions driven.SessionStore) *AuthService {
	return &AuthService{
		backend:  backend,
		sessions: sessions,
		now:      time.Now,
	}
}

// Login authenticates and stores the resulting session.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || creds.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	logger.Debug("Logging in as %q", creds.Username)
	session, err := s.backend.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.sessions.Save(session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	logger.Info("Logged in as %s (%s)", session.Username, strings.Join(session.Roles, ", "))
	return session, nil
}

// Logout forgets the stored session.
func (s *AuthService) Logout() error {
	if err := s.sessions.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Session returns the stored session. A session whose access token has
// expired and which can no longer refresh reports domain.ErrAuthExpired.
func (s *AuthService) Session() (*domain.Session, error) {
	session, err := s.sessions.Load()
	if err != nil {
		return nil, err
	}

	now := s.now()
	if session.AccessTokenExpired(now) && !session.CanRefresh(now) {
		return nil, domain.ErrAuthExpired
	}
	return session, nil
}

// Permissions returns the current user's flags, or none when logged out.
func (s *AuthService) Permissions() domain.Permissions {
	session, err := s.Session()
	if err != nil {
		if !errors.Is(err, domain.ErrAuthRequired) {
			logger.Warn("Reading session for permissions: %v", err)
		}
		return domain.Permissions{}
	}
	return session.Permissions()
}
