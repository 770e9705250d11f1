package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_HomeFromEnv(t *testing.T) {
	home := filepath.Join(t.TempDir(), "fd-home")
	t.Setenv(EnvHome, home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ConfigFile), store.Path())
	assert.DirExists(t, home)
}

func TestDefaultDir_FallsBackToUserHome(t *testing.T) {
	t.Setenv(EnvHome, "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".frontdesk"), dir)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("backend.url", "http://clinic.local/api"))

	val, ok := store.Get("backend.url")
	assert.True(t, ok)
	assert.Equal(t, "http://clinic.local/api", val)
	assert.Equal(t, "http://clinic.local/api", store.GetString("backend.url"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("missing")

	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.Zero(t, store.GetDuration("missing"))
}

func TestConfigStore_WrongTypes(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("search.page_size", 50))
	require.NoError(t, store.Set("cache.enabled", "yes"))

	assert.Empty(t, store.GetString("search.page_size"))
	assert.False(t, store.GetBool("cache.enabled"))
	assert.Zero(t, store.GetInt("cache.enabled"))
}

func TestConfigStore_GetDuration(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("search.debounce", "250ms"))
	require.NoError(t, store.Set("backend.timeout", 20*time.Second))
	require.NoError(t, store.Set("bad", "soon"))

	assert.Equal(t, 250*time.Millisecond, store.GetDuration("search.debounce"))
	assert.Equal(t, 20*time.Second, store.GetDuration("backend.timeout"))
	assert.Equal(t, "20s", store.GetString("backend.timeout"), "durations are stored as strings")
	assert.Zero(t, store.GetDuration("bad"))
}

func TestConfigStore_GetDuration_IntegerMilliseconds(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFile),
		[]byte("[search]\ndebounce = 400\n"), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 400*time.Millisecond, store.GetDuration("search.debounce"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("backend.url", "http://a/api"))
	require.NoError(t, store1.Set("backend.rate_per_second", 5))
	require.NoError(t, store1.Set("cache.enabled", false))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://a/api", store2.GetString("backend.url"))
	assert.Equal(t, 5, store2.GetInt("backend.rate_per_second"))
	_, ok := store2.Get("cache.enabled")
	assert.True(t, ok)
	assert.False(t, store2.GetBool("cache.enabled"))
}

func TestConfigStore_WritesSectionTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("backend.url", "http://a/api"))
	require.NoError(t, store.Set("search.min_query_length", 3))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[backend]")
	assert.Contains(t, content, "[search]")
	assert.NotContains(t, content, "backend.url")
}

func TestConfigStore_LoadNestedFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[backend]
url = "http://clinic/api"
timeout = "20s"

[search]
min_query_length = 3
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFile), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://clinic/api", store.GetString("backend.url"))
	assert.Equal(t, 20*time.Second, store.GetDuration("backend.timeout"))
	assert.Equal(t, 3, store.GetInt("search.min_query_length"))
	assert.Equal(t, []string{"backend.timeout", "backend.url", "search.min_query_length"}, store.Keys())
}

func TestConfigStore_Load_PicksUpExternalEdits(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("search.min_query_length", 2))

	require.NoError(t, os.WriteFile(store.Path(), []byte("[search]\nmin_query_length = 4\n"), 0600))
	require.NoError(t, store.Load())

	assert.Equal(t, 4, store.GetInt("search.min_query_length"))
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Load())
	assert.Empty(t, store.Keys())
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("key", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFile), []byte(""), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFile), []byte("[[[ not toml"), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	_, err := NewConfigStore(filepath.Join(blocker, "nested"))

	assert.Error(t, err)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("search.page_size", n)
			_ = store.GetInt("search.page_size")
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("search.page_size")
	assert.True(t, ok)
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"backend.url":     "http://a",
		"backend.timeout": "15s",
		"top":             true,
		"x":               1,
		"x.y":             2,
	}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{"url": "http://a", "timeout": "15s"}, nested["backend"])
	assert.Equal(t, true, nested["top"])
	assert.Equal(t, 1, nested["x"], "leaf value wins over a section with the same name")
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"backend": map[string]any{"url": "http://a"},
		"cache":   map[string]any{"enabled": true},
	}

	assert.Equal(t, map[string]any{"backend.url": "http://a", "cache.enabled": true}, flattenMap(nested, ""))
}
