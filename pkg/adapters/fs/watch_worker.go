package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/snipperclipper/pkg/core"
)

// Watch reports changes made to the store file by any process until ctx is done.
// The directory is watched rather than the file, because every write replaces
// the file through a rename.
func (s *Store[T]) Watch(ctx context.Context) (<-chan core.Event, error) {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create directory for %s: %w", core.ErrConnection, s.Path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("%w: watch %s: %w", core.ErrConnection, dir, err)
	}

	s.setWatching(1)
	events := make(chan core.Event, 16)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer s.setWatching(-1)
		defer close(events)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				e, relevant := s.translate(event)
				if !relevant {
					continue
				}
				s.config.Logger.Debug("store changed", "type", e.Type, "path", e.Path)
				select {
				case events <- e:
				case <-ctx.Done():
					return nil
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				s.config.Logger.Error("fsnotify error", "error", err)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.config.Logger.Error("watch loop failed", "path", s.Path, "error", err)
	}))

	return events, nil
}

// translate maps a directory event to a store event, ignoring temp files,
// the lock file and unrelated files.
func (s *Store[T]) translate(event fsnotify.Event) (core.Event, bool) {
	name := filepath.Base(event.Name)
	if name != filepath.Base(s.Path) || strings.HasPrefix(name, TempFilePrefix) {
		return core.Event{}, false
	}

	var typ core.EventType
	switch {
	case event.Has(fsnotify.Create):
		typ = core.EventCreate
	case event.Has(fsnotify.Write):
		typ = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		typ = core.EventDelete
	default:
		return core.Event{}, false
	}

	return core.Event{
		Type:      typ,
		Path:      s.Path,
		Timestamp: time.Now().Unix(),
	}, true
}

func (s *Store[T]) setWatching(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers += delta
}
