package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/snipperclipper/pkg/core"
)

const (
	// DefaultLockTimeout bounds how long Update and Modify wait for the lock.
	DefaultLockTimeout = 5 * time.Second
	// DefaultStaleLock is the age after which a lock file is considered abandoned.
	DefaultStaleLock = 30 * time.Second
)

// Config holds the configuration for a file-backed store.
type Config struct {
	Path        string
	Logger      *slog.Logger
	Strict      bool          // Reject unknown fields when decoding.
	Codec       Codec         // Overrides the codec chosen from the file extension.
	Perm        os.FileMode   // Defaults to 0644.
	LockTimeout time.Duration // Defaults to DefaultLockTimeout.
	StaleLock   time.Duration // Defaults to DefaultStaleLock.
}

// Store implements core.Storage for a single file holding the whole payload.
// Reads take no lock; writes hold an advisory lock file across the
// temp-write-then-rename sequence, so readers never observe a partial file.
type Store[T any] struct {
	Path   string
	codec  Codec
	lock   *fileLock
	config Config

	mu         sync.RWMutex
	lastWrite  *time.Time
	watchers   int
	writeCount int
}

// NewStore creates a file-backed store. The file does not need to exist yet.
func NewStore[T any](config Config) (*Store[T], error) {
	if config.Path == "" {
		return nil, errors.New("store path cannot be empty")
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Perm == 0 {
		config.Perm = 0644
	}
	if config.LockTimeout == 0 {
		config.LockTimeout = DefaultLockTimeout
	}
	if config.StaleLock == 0 {
		config.StaleLock = DefaultStaleLock
	}

	codec := config.Codec
	if codec == nil {
		var err error
		codec, err = CodecFor(config.Path, config.Strict)
		if err != nil {
			return nil, err
		}
	}

	return &Store[T]{
		Path:  config.Path,
		codec: codec,
		lock: &fileLock{
			path:    config.Path + LockSuffix,
			timeout: config.LockTimeout,
			stale:   config.StaleLock,
			logger:  config.Logger,
		},
		config: config,
	}, nil
}

// Load reads the entire file and decodes it.
func (s *Store[T]) Load(ctx context.Context) (T, error) {
	var data T

	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return data, fmt.Errorf("%w: read %s: %w", core.ErrConnection, s.Path, err)
	}

	if err := s.codec.Decode(raw, &data); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: decode %s: %w", core.ErrSerialization, s.Path, err)
	}

	return data, nil
}

// Update encodes data and atomically replaces the file with it.
//
// Workflow:
//  1. Encode (nothing is touched on disk if this fails).
//  2. Ensure the parent directory exists.
//  3. Acquire the lock file.
//  4. Write to a temp file and rename it over the destination.
func (s *Store[T]) Update(ctx context.Context, data T) (T, error) {
	payload, err := s.codec.Encode(data)
	if err != nil {
		return data, fmt.Errorf("%w: encode %s: %w", core.ErrSerialization, s.Path, err)
	}

	unlock, err := s.acquire(ctx)
	if err != nil {
		return data, err
	}
	defer unlock()

	if err := s.write(payload); err != nil {
		return data, err
	}
	return data, nil
}

// Modify implements core.Modifier: the current file is read, handed to fn,
// and fn's result written back, all while holding the lock.
func (s *Store[T]) Modify(ctx context.Context, fn func(current T, exists bool) (T, error)) (T, error) {
	unlock, err := s.acquire(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	defer unlock()

	exists := true
	current, err := s.Load(ctx)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return current, err
		}
		exists = false
	}

	next, err := fn(current, exists)
	if err != nil {
		return next, err
	}

	payload, err := s.codec.Encode(next)
	if err != nil {
		return next, fmt.Errorf("%w: encode %s: %w", core.ErrSerialization, s.Path, err)
	}

	if err := s.write(payload); err != nil {
		return next, err
	}
	return next, nil
}

func (s *Store[T]) acquire(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return nil, fmt.Errorf("%w: create directory for %s: %w", core.ErrIO, s.Path, err)
	}

	unlock, err := s.lock.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: lock %s: %w", core.ErrIO, s.Path, err)
	}
	s.config.Logger.Debug("store locked", "path", s.Path)
	return unlock, nil
}

func (s *Store[T]) write(payload []byte) error {
	if err := writeFileAtomic(s.Path, payload, s.config.Perm); err != nil {
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}

	s.mu.Lock()
	now := time.Now()
	s.lastWrite = &now
	s.writeCount++
	s.mu.Unlock()
	return nil
}

var (
	_ core.Storage[core.CollectionData]  = (*Store[core.CollectionData])(nil)
	_ core.Modifier[core.CollectionData] = (*Store[core.CollectionData])(nil)
	_ core.Watchable                     = (*Store[core.CollectionData])(nil)
)
