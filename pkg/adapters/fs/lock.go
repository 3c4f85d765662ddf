package fs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/snipperclipper/pkg/core"
)

const (
	// LockSuffix is appended to the store path to name its lock file.
	LockSuffix = ".lock"

	lockRetryInterval = 10 * time.Millisecond
)

// fileLock is an advisory, cross-process lock: whoever creates the lock file
// (O_CREATE|O_EXCL) owns the store until it removes the file.
//
// The file holds an owner token (pid and a random nonce). Release only removes
// the file while it still carries that token.
type fileLock struct {
	path    string
	timeout time.Duration
	stale   time.Duration
	logger  *slog.Logger
}

// Acquire blocks until the lock is held, ctx is done, or the timeout elapses.
// The returned function releases the lock.
func (l *fileLock) Acquire(ctx context.Context) (func(), error) {
	deadline := time.Now().Add(l.timeout)
	token := []byte(fmt.Sprintf("%d %s\n", os.Getpid(), uuid.NewString()))

	for {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			_, werr := f.Write(token)
			if cerr := f.Close(); werr == nil {
				werr = cerr
			}
			if werr != nil {
				os.Remove(l.path)
				return nil, fmt.Errorf("failed to write lock: %w", werr)
			}
			return func() { l.release(token) }, nil
		}

		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		if l.breakIfStale() {
			continue
		}

		if l.timeout > 0 && time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", core.ErrLockTimeout, l.path)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

// release removes the lock file if it is still ours. A holder whose lock was
// broken as stale leaves the next owner's lock alone.
func (l *fileLock) release(token []byte) {
	current, err := os.ReadFile(l.path)
	if err != nil {
		return
	}
	if !bytes.Equal(current, token) {
		l.logger.Warn("lock was taken over while held", "path", l.path)
		return
	}
	os.Remove(l.path)
}

// breakIfStale removes a lock file left behind by a writer that died while
// holding it. Reports true when the caller should retry immediately.
//
// The stale file is first renamed to a private name, so the identity check
// and the removal apply to the same file. A fresh lock grabbed by mistake is
// linked back into place.
func (l *fileLock) breakIfStale() bool {
	info, err := os.Stat(l.path)
	if err != nil {
		return os.IsNotExist(err)
	}
	if l.stale <= 0 || time.Since(info.ModTime()) < l.stale {
		return false
	}

	aside := fmt.Sprintf("%s.stale-%s", l.path, uuid.NewString())
	if err := os.Rename(l.path, aside); err != nil {
		// Someone else broke it first.
		return os.IsNotExist(err)
	}
	defer os.Remove(aside)

	taken, err := os.Stat(aside)
	if err == nil && os.SameFile(info, taken) {
		l.logger.Warn("removing stale lock", "path", l.path, "age", time.Since(info.ModTime()))
		return true
	}

	// The lock was replaced between the checks; hand it back to its owner.
	if err := os.Link(aside, l.path); err != nil {
		l.logger.Error("could not restore lock", "path", l.path, "error", err)
	}
	return false
}
