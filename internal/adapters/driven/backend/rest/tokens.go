package rest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/ports/driven"
	"github.com/goodeyes/frontdesk/internal/logger"
)

// refreshTimeout bounds a single refresh-token exchange.
const refreshTimeout = 15 * time.Second

// RefreshFunc exchanges a refresh token for a new session.
type RefreshFunc func(ctx context.Context, refreshToken string) (*domain.Session, error)

// SessionTokenSource is an oauth2.TokenSource over the stored session.
// Expired access tokens are refreshed and the new session is saved.
type SessionTokenSource struct {
	mu      sync.Mutex
	store   driven.SessionStore
	refresh RefreshFunc
	now     func() time.Time
	forced  bool
}

// Ensure SessionTokenSource implements oauth2.TokenSource.
var _ oauth2.TokenSource = (*SessionTokenSource)(nil)

// NewSessionTokenSource creates a token source reading from store.
func NewSessionTokenSource(store driven.SessionStore, refresh RefreshFunc) *SessionTokenSource {
	return &SessionTokenSource{
		store:   store,
		refresh: refresh,
		now:     time.Now,
	}
}

// Token returns the current access token, refreshing it first when it has
// expired or Invalidate was called.
func (s *SessionTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	now := s.now()
	if s.forced || session.AccessTokenExpired(now) {
		if !session.CanRefresh(now) {
			return nil, domain.ErrAuthExpired
		}
		session, err = s.refreshLocked(session)
		if err != nil {
			return nil, err
		}
		s.forced = false
	}

	return &oauth2.Token{
		AccessToken: session.AccessToken,
		TokenType:   "Bearer",
		Expiry:      session.AccessTokenExpiresAt,
	}, nil
}

// Invalidate makes the next Token call refresh regardless of expiry.
func (s *SessionTokenSource) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced = true
}

func (s *SessionTokenSource) refreshLocked(current *domain.Session) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	logger.Debug("Refreshing access token for %s", current.Username)
	fresh, err := s.refresh(ctx, current.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", domain.ErrAuthExpired, domain.ErrTokenRefreshFailed, err)
	}
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = current.RefreshToken
		fresh.RefreshTokenExpiresAt = current.RefreshTokenExpiresAt
	}

	if err := s.store.Save(fresh); err != nil {
		return nil, fmt.Errorf("save refreshed session: %w", err)
	}
	return fresh, nil
}
