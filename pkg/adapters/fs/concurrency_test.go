package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/snipperclipper/pkg/core"
)

// Two collections over the same file behave like two processes: each loads
// once, then both keep adding. Every addition must survive.
func TestConcurrentCollections_KeepEveryAdd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippets.json")
	ctx := context.Background()

	const writers = 2
	const perWriter = 15

	collections := make([]*core.Collection, writers)
	for i := range collections {
		store, err := NewStore[core.CollectionData](Config{Path: path, Logger: discardLogger()})
		require.NoError(t, err)
		collections[i] = core.NewCollection(store, discardLogger())
		collections[i].Load(ctx)
	}

	var g errgroup.Group
	for w, c := range collections {
		g.Go(func() error {
			for i := 0; i < perWriter; i++ {
				s := core.NewSnippet(fmt.Sprintf("w%d/snip%02d.go", w, i), "")
				if err := c.Add(ctx, s); err != nil {
					return fmt.Errorf("writer %d: %w", w, err)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	reader, err := NewStore[core.CollectionData](Config{Path: path, Logger: discardLogger()})
	require.NoError(t, err)
	final, err := reader.Load(ctx)
	require.NoError(t, err)
	// Every add plus one template from the first writer.
	assert.Len(t, final.Snippets, writers*perWriter+1)

	seen := make(map[string]bool)
	for _, s := range final.Snippets {
		assert.False(t, seen[s.ID.String()], "duplicate id %s", s.ID)
		seen[s.ID.String()] = true
	}
}

func TestConcurrentUpdates_FileAlwaysDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	ctx := context.Background()

	store, err := NewStore[core.ConfigData](Config{Path: path, Logger: discardLogger()})
	require.NoError(t, err)
	_, err = store.Update(ctx, core.ConfigData{Theme: "seed"})
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := store.Update(ctx, core.ConfigData{Theme: fmt.Sprintf("theme-%d", i)})
			return err
		})
	}

	// Readers never see a partial document.
	for i := 0; i < 50; i++ {
		_, err := store.Load(ctx)
		assert.NoError(t, err)
	}
	require.NoError(t, g.Wait())
}
