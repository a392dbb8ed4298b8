package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	store := NewStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, 0, store.Len())
}

func TestStore_Set_Success(t *testing.T) {
	store := NewStore()

	err := store.Set("key1", "value1")
	require.NoError(t, err)

	val, err := store.Get("key1")
	require.NoError(t, err)
	assert.Equal(t, "value1", val)
}

func TestStore_Set_Update(t *testing.T) {
	store := NewStore()

	require.NoError(t, store.Set("key1", "original"))
	require.NoError(t, store.Set("key1", "updated"))

	val, err := store.Get("key1")
	require.NoError(t, err)
	assert.Equal(t, "updated", val)
	assert.Equal(t, 1, store.Len())
}

func TestStore_Get_Missing(t *testing.T) {
	store := NewStore()

	val, err := store.Get("missing")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestStore_Delete(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Set("code", "abc"))

	require.NoError(t, store.Delete("code"))
	val, err := store.Get("code")
	require.NoError(t, err)
	assert.Empty(t, val)

	// Deleting again is fine
	assert.NoError(t, store.Delete("code"))
}

func TestStore_Path(t *testing.T) {
	assert.Equal(t, ":memory:", NewStore().Path())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key%d", n%5)
			_ = store.Set(key, fmt.Sprintf("value%d", n))
			_, _ = store.Get(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, store.Len())
}
