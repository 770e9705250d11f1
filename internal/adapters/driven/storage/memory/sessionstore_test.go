package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodeyes/frontdesk/internal/core/domain"
)

func TestSessionStore_Empty(t *testing.T) {
	store := NewSessionStore()

	_, err := store.Load()
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.NoError(t, store.Clear())
}

func TestSessionStore_SaveLoadClear(t *testing.T) {
	store := NewSessionStore()
	session := &domain.Session{AccessToken: "a", Username: "jdoe", Roles: []string{domain.RoleDoctor}}

	require.NoError(t, store.Save(session))
	session.Roles[0] = domain.RoleAdmin

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "jdoe", got.Username)
	assert.Equal(t, []string{domain.RoleDoctor}, got.Roles, "stored copy is isolated")

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestSessionStore_SaveNil(t *testing.T) {
	assert.ErrorIs(t, NewSessionStore().Save(nil), domain.ErrInvalidInput)
}
