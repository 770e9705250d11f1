package domain

import "time"

// Session is the authenticated user's token pair and identity.
type Session struct {
	AccessToken  string
	RefreshToken string
	TokenType    string

	Username  string
	Email     string
	FirstName string
	LastName  string
	Roles     []string

	// PasswordChangeRequired is set for invited users on first login.
	PasswordChangeRequired bool

	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
}

// accessTokenSkew refreshes tokens slightly before they expire so a request
// in flight does not race the expiry.
const accessTokenSkew = 30 * time.Second

// AccessTokenExpired reports whether the access token needs refreshing at now.
// A zero expiry is treated as non-expiring.
func (s *Session) AccessTokenExpired(now time.Time) bool {
	if s.AccessTokenExpiresAt.IsZero() {
		return false
	}
	return !now.Add(accessTokenSkew).Before(s.AccessTokenExpiresAt)
}

// CanRefresh reports whether the refresh token is present and unexpired at now.
func (s *Session) CanRefresh(now time.Time) bool {
	if s.RefreshToken == "" {
		return false
	}
	return s.RefreshTokenExpiresAt.IsZero() || now.Before(s.RefreshTokenExpiresAt)
}

// DisplayName returns the user's full name, or the username when unnamed.
func (s *Session) DisplayName() string {
	if s.FirstName == "" && s.LastName == "" {
		return s.Username
	}
	if s.LastName == "" {
		return s.FirstName
	}
	if s.FirstName == "" {
		return s.LastName
	}
	return s.FirstName + " " + s.LastName
}

// Permissions derives the session's capability flags.
func (s *Session) Permissions() Permissions {
	return PermissionsForRoles(s.Roles)
}

// Credentials carries a username and password for login.
type Credentials struct {
	Username string
	Password string
}
