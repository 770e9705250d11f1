package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_AccessTokenExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expires time.Time
		want    bool
	}{
		{"zero expiry never expires", time.Time{}, false},
		{"well in the future", now.Add(time.Hour), false},
		{"inside skew window", now.Add(10 * time.Second), true},
		{"in the past", now.Add(-time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{AccessTokenExpiresAt: tt.expires}
			assert.Equal(t, tt.want, s.AccessTokenExpired(now))
		})
	}
}

func TestSession_CanRefresh(t *testing.T) {
	now := time.Now()

	assert.False(t, (&Session{}).CanRefresh(now))
	assert.True(t, (&Session{RefreshToken: "r"}).CanRefresh(now))
	assert.True(t, (&Session{RefreshToken: "r", RefreshTokenExpiresAt: now.Add(time.Hour)}).CanRefresh(now))
	assert.False(t, (&Session{RefreshToken: "r", RefreshTokenExpiresAt: now.Add(-time.Hour)}).CanRefresh(now))
}

func TestSession_DisplayName(t *testing.T) {
	assert.Equal(t, "jdoe", (&Session{Username: "jdoe"}).DisplayName())
	assert.Equal(t, "Jane", (&Session{Username: "jdoe", FirstName: "Jane"}).DisplayName())
	assert.Equal(t, "Doe", (&Session{Username: "jdoe", LastName: "Doe"}).DisplayName())
	assert.Equal(t, "Jane Doe", (&Session{Username: "jdoe", FirstName: "Jane", LastName: "Doe"}).DisplayName())
}

func TestSession_Permissions(t *testing.T) {
	s := Session{Roles: []string{RoleReceptionist}}

	p := s.Permissions()
	assert.True(t, p.IsReceptionist)
	assert.True(t, p.CanRecordUsage())
}
