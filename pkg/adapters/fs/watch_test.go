package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/snipperclipper/pkg/core"
)

func TestStore_Watch(t *testing.T) {
	store := newTestStore[core.CollectionData](t, "snippets.json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Watch(ctx)
	require.NoError(t, err)

	// Changes to unrelated files in the same directory are ignored.
	dir := filepath.Dir(store.Path)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	_, err = store.Update(context.Background(), core.CollectionData{Snippets: []core.Snippet{core.NewSnippet("a.go", "")}})
	require.NoError(t, err)

	select {
	case e := <-events:
		assert.Equal(t, store.Path, e.Path)
		assert.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)
		assert.NotZero(t, e.Timestamp)
	case <-time.After(3 * time.Second):
		t.Fatal("no event received after update")
	}

	assert.Eventually(t, func() bool {
		return store.State().(StoreState).Watchers == 1
	}, time.Second, 10*time.Millisecond)

	cancel()

	// The channel is closed once the context is done.
	assert.Eventually(t, func() bool {
		for {
			select {
			case _, ok := <-events:
				if !ok {
					return true
				}
			default:
				return false
			}
		}
	}, 2*time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return store.State().(StoreState).Watchers == 0
	}, time.Second, 10*time.Millisecond)
}
