package registry_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperitsme/vanta/registry"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := registry.NewStore()

	task := store.Create(registry.KindGeneric)
	assert.Len(t, task.ID, 8)
	assert.Equal(t, registry.KindGeneric, task.Kind)
	assert.Equal(t, registry.StatusRunning, task.Status)
	assert.WithinDuration(t, time.Now().UTC(), task.CreatedAt, time.Second)
	assert.Nil(t, task.Result)

	got, ok := store.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, task, got)
}

func TestStore_GetUnknown(t *testing.T) {
	store := registry.NewStore()
	_, ok := store.Get("missing1")
	assert.False(t, ok)
}

func TestStore_UpdateDone(t *testing.T) {
	store := registry.NewStore()
	task := store.Create(registry.KindSheets)

	done, err := store.Update(task.ID, registry.StatusDone, registry.GenericResult{Answer: "hi"}, "")
	require.NoError(t, err)
	assert.Equal(t, registry.StatusDone, done.Status)
	assert.Equal(t, registry.GenericResult{Answer: "hi"}, done.Result)
	assert.Empty(t, done.Error)
	// CreatedAt is immutable across transitions
	assert.Equal(t, task.CreatedAt, done.CreatedAt)

	got, ok := store.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, done, got)
}

func TestStore_UpdateError(t *testing.T) {
	store := registry.NewStore()
	task := store.Create(registry.KindGeneric)

	failed, err := store.Update(task.ID, registry.StatusError, nil, "provider exploded")
	require.NoError(t, err)
	assert.Equal(t, registry.StatusError, failed.Status)
	assert.Nil(t, failed.Result)
	assert.Equal(t, "provider exploded", failed.Error)
}

func TestStore_UpdateUnknown(t *testing.T) {
	store := registry.NewStore()
	_, err := store.Update("missing1", registry.StatusDone, nil, "")
	assert.Error(t, err)
}

func TestStore_PutReplaces(t *testing.T) {
	store := registry.NewStore()
	task := store.Create(registry.KindGeneric)

	task.Status = registry.StatusDone
	task.Result = registry.GenericResult{Answer: "replaced"}
	store.Put(task)

	got, ok := store.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, registry.StatusDone, got.Status)
	assert.Equal(t, 1, store.Len())
}

func TestStore_ConcurrentCreates(t *testing.T) {
	store := registry.NewStore()

	const n = 50
	var wg sync.WaitGroup
	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- store.Create(registry.KindGeneric).ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		_, ok := store.Get(id)
		assert.True(t, ok)
	}
	assert.Equal(t, n, store.Len())
}
