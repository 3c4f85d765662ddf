package fs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/snipperclipper/pkg/core"
)

func newTestLock(t *testing.T, timeout, stale time.Duration) *fileLock {
	t.Helper()
	return &fileLock{
		path:    filepath.Join(t.TempDir(), "snippets.json.lock"),
		timeout: timeout,
		stale:   stale,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestFileLock_AcquireRelease(t *testing.T) {
	l := newTestLock(t, time.Second, time.Minute)

	unlock, err := l.Acquire(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, l.path)

	unlock()
	assert.NoFileExists(t, l.path)
}

func TestFileLock_WaitsForHolder(t *testing.T) {
	l := newTestLock(t, 2*time.Second, time.Minute)

	unlock, err := l.Acquire(context.Background())
	require.NoError(t, err)

	go func() {
		time.Sleep(200 * time.Millisecond)
		unlock()
	}()

	start := time.Now()
	unlock2, err := l.Acquire(context.Background())
	require.NoError(t, err)
	defer unlock2()

	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond, "second acquire should block until release")
}

func TestFileLock_Timeout(t *testing.T) {
	l := newTestLock(t, 100*time.Millisecond, time.Minute)

	unlock, err := l.Acquire(context.Background())
	require.NoError(t, err)
	defer unlock()

	_, err = l.Acquire(context.Background())
	assert.True(t, errors.Is(err, core.ErrLockTimeout), "got %v", err)
}

func TestFileLock_ContextCancel(t *testing.T) {
	l := newTestLock(t, time.Minute, time.Minute)

	unlock, err := l.Acquire(context.Background())
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = l.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFileLock_BreaksStaleLock(t *testing.T) {
	l := newTestLock(t, time.Second, time.Minute)

	// A lock left behind by a writer that crashed an hour ago.
	require.NoError(t, os.WriteFile(l.path, []byte("12345\n"), 0644))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(l.path, old, old))

	unlock, err := l.Acquire(context.Background())
	require.NoError(t, err)
	unlock()
}

func TestFileLock_ReleaseKeepsNextOwnersLock(t *testing.T) {
	l := newTestLock(t, time.Second, time.Minute)

	first, err := l.Acquire(context.Background())
	require.NoError(t, err)

	// The first holder stalls long enough for its lock to look abandoned.
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(l.path, old, old))

	second, err := l.Acquire(context.Background())
	require.NoError(t, err)

	first()
	assert.FileExists(t, l.path, "late release removed the new owner's lock")

	second()
	assert.NoFileExists(t, l.path)
}

func TestFileLock_StaleBreakLeavesNoLeftovers(t *testing.T) {
	l := newTestLock(t, time.Second, time.Minute)
	require.NoError(t, os.WriteFile(l.path, []byte("12345\n"), 0644))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(l.path, old, old))

	unlock, err := l.Acquire(context.Background())
	require.NoError(t, err)
	unlock()

	entries, err := os.ReadDir(filepath.Dir(l.path))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileLock_SingleOwnerAfterStaleBreak(t *testing.T) {
	for round := 0; round < 50; round++ {
		l := newTestLock(t, 5*time.Second, time.Minute)
		require.NoError(t, os.WriteFile(l.path, []byte("12345\n"), 0644))
		old := time.Now().Add(-time.Hour)
		require.NoError(t, os.Chtimes(l.path, old, old))

		var holders, maxHolders atomic.Int32
		var g errgroup.Group
		for i := 0; i < 4; i++ {
			g.Go(func() error {
				unlock, err := l.Acquire(context.Background())
				if err != nil {
					return err
				}
				n := holders.Add(1)
				for {
					m := maxHolders.Load()
					if n <= m || maxHolders.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				holders.Add(-1)
				unlock()
				return nil
			})
		}
		require.NoError(t, g.Wait())
		require.Equal(t, int32(1), maxHolders.Load(), "round %d: lock had concurrent owners", round)
	}
}
