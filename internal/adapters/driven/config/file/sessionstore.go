package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/goodeyes/frontdesk/internal/core/domain"
	"github.com/goodeyes/frontdesk/internal/core/ports/driven"
)

// SessionFile is the session file name inside the home directory.
const SessionFile = "session.toml"

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore persists the login session as TOML, readable only by the owner.
type SessionStore struct {
	mu       sync.Mutex
	filePath string
}

// sessionFile is the on-disk layout of a session.
type sessionFile struct {
	Tokens struct {
		Access           string    `toml:"access"`
		Refresh          string    `toml:"refresh"`
		Type             string    `toml:"type"`
		AccessExpiresAt  time.Time `toml:"access_expires_at"`
		RefreshExpiresAt time.Time `toml:"refresh_expires_at"`
	} `toml:"tokens"`
	User struct {
		Username               string   `toml:"username"`
		Email                  string   `toml:"email"`
		FirstName              string   `toml:"first_name"`
		LastName               string   `toml:"last_name"`
		Roles                  []string `toml:"roles"`
		PasswordChangeRequired bool     `toml:"password_change_required"`
	} `toml:"user"`
}

// NewSessionStore creates a session store in dir.
// If dir is empty, defaults to DefaultDir()/session.toml.
func NewSessionStore(dir string) (*SessionStore, error) {
	resolved, err := resolveDir(dir)
	if err != nil {
		return nil, err
	}
	return &SessionStore{filePath: filepath.Join(resolved, SessionFile)}, nil
}

// Load reads the stored session.
func (s *SessionStore) Load() (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrAuthRequired
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var f sessionFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	if f.Tokens.Access == "" {
		return nil, domain.ErrAuthRequired
	}

	return &domain.Session{
		AccessToken:            f.Tokens.Access,
		RefreshToken:           f.Tokens.Refresh,
		TokenType:              f.Tokens.Type,
		AccessTokenExpiresAt:   f.Tokens.AccessExpiresAt,
		RefreshTokenExpiresAt:  f.Tokens.RefreshExpiresAt,
		Username:               f.User.Username,
		Email:                  f.User.Email,
		FirstName:              f.User.FirstName,
		LastName:               f.User.LastName,
		Roles:                  f.User.Roles,
		PasswordChangeRequired: f.User.PasswordChangeRequired,
	}, nil
}

// Save writes the session, replacing any previous one.
func (s *SessionStore) Save(session *domain.Session) error {
	if session == nil {
		return domain.ErrInvalidInput
	}

	var f sessionFile
	f.Tokens.Access = session.AccessToken
	f.Tokens.Refresh = session.RefreshToken
	f.Tokens.Type = session.TokenType
	f.Tokens.AccessExpiresAt = session.AccessTokenExpiresAt
	f.Tokens.RefreshExpiresAt = session.RefreshTokenExpiresAt
	f.User.Username = session.Username
	f.User.Email = session.Email
	f.User.FirstName = session.FirstName
	f.User.LastName = session.LastName
	f.User.Roles = session.Roles
	f.User.PasswordChangeRequired = session.PasswordChangeRequired

	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Write then rename so a crash never leaves a truncated session.
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Clear deletes the session file.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// Path returns the session file path.
func (s *SessionStore) Path() string {
	return s.filePath
}
