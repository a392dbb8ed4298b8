package sqlite

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store, dir
}

func TestNewStore_Path(t *testing.T) {
	store, dir := setupTestStore(t)
	assert.Equal(t, filepath.Join(dir, DBName), store.Path())
}

func TestNewStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewStore("")
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(home, ".prodsearch", "data", DBName), store.Path())
}

func TestStore_SetAndGet(t *testing.T) {
	store, _ := setupTestStore(t)

	require.NoError(t, store.Set("code", "abcdefghjkABCDEFGH12"))

	val, err := store.Get("code")
	require.NoError(t, err)
	assert.Equal(t, "abcdefghjkABCDEFGH12", val)
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := setupTestStore(t)

	val, err := store.Get("code")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestStore_SetOverwrites(t *testing.T) {
	store, _ := setupTestStore(t)

	require.NoError(t, store.Set("code", "first"))
	require.NoError(t, store.Set("code", "second"))

	val, err := store.Get("code")
	require.NoError(t, err)
	assert.Equal(t, "second", val)
}

func TestStore_Delete(t *testing.T) {
	store, _ := setupTestStore(t)
	require.NoError(t, store.Set("code", "abc"))

	require.NoError(t, store.Delete("code"))
	require.NoError(t, store.Delete("code"))

	val, err := store.Get("code")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set("code", "persisted"))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	val, err := second.Get("code")
	require.NoError(t, err)
	assert.Equal(t, "persisted", val)
}

func TestStore_UpdatedAt(t *testing.T) {
	store, _ := setupTestStore(t)

	_, ok, err := store.UpdatedAt("code")
	require.NoError(t, err)
	assert.False(t, ok)

	before := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, store.Set("code", "abc"))

	ts, ok, err := store.UpdatedAt("code")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, ts.After(before))
}

func TestStore_MigrationsRecorded(t *testing.T) {
	store, _ := setupTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)

	// Running again is a no-op
	require.NoError(t, store.migrate(fstest.MapFS{
		"001_kv.up.sql": {Data: []byte("CREATE TABLE kv (broken")},
	}))
}

func TestStore_MigrationFailure(t *testing.T) {
	store, _ := setupTestStore(t)

	err := store.migrate(fstest.MapFS{
		"002_bad.up.sql": {Data: []byte("NOT VALID SQL")},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "002_bad.up.sql")

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store, _ := setupTestStore(t)
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key%d", n%4)
			assert.NoError(t, store.Set(key, fmt.Sprintf("value%d", n)))
			_, err := store.Get(key)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
}
