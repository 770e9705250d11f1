package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodeyes/frontdesk/internal/core/domain"
)

func TestSessionStore_LoadEmpty(t *testing.T) {
	store, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load()

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestSessionStore_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSessionStore(dir)
	require.NoError(t, err)
	expires := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	session := &domain.Session{
		AccessToken:           "access",
		RefreshToken:          "refresh",
		TokenType:             "Bearer",
		Username:              "jdoe",
		FirstName:             "Jane",
		Roles:                 []string{domain.RoleReceptionist},
		AccessTokenExpiresAt:  expires,
		RefreshTokenExpiresAt: expires.Add(7 * 24 * time.Hour),
	}
	require.NoError(t, store.Save(session))

	reopened, err := NewSessionStore(dir)
	require.NoError(t, err)
	loaded, err := reopened.Load()
	require.NoError(t, err)

	assert.Equal(t, "access", loaded.AccessToken)
	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.Equal(t, "jdoe", loaded.Username)
	assert.Equal(t, []string{domain.RoleReceptionist}, loaded.Roles)
	assert.True(t, expires.Equal(loaded.AccessTokenExpiresAt))
	assert.True(t, session.RefreshTokenExpiresAt.Equal(loaded.RefreshTokenExpiresAt))
}

func TestSessionStore_FilePermissions(t *testing.T) {
	store, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(&domain.Session{AccessToken: "a"}))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assert.NoFileExists(t, store.Path()+".tmp")
}

func TestSessionStore_SaveNil(t *testing.T) {
	store, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)

	assert.ErrorIs(t, store.Save(nil), domain.ErrInvalidInput)
}

func TestSessionStore_Clear(t *testing.T) {
	store, err := NewSessionStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(&domain.Session{AccessToken: "a"}))

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, domain.ErrAuthRequired)

	assert.NoError(t, store.Clear(), "clearing twice is fine")
}

func TestSessionStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SessionFile), []byte("tokens = ["), 0600))
	store, err := NewSessionStore(dir)
	require.NoError(t, err)

	_, err = store.Load()

	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrAuthRequired)
}

func TestSessionStore_MissingAccessToken(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SessionFile), []byte("[user]\nusername = \"jdoe\"\n"), 0600))
	store, err := NewSessionStore(dir)
	require.NoError(t, err)

	_, err = store.Load()

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}
