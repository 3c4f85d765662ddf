package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path        string     `json:"path"`
	Format      string     `json:"format"`
	LockPath    string     `json:"lock_path"`
	Strict      bool       `json:"strict"`
	Writes      int        `json:"writes"`
	LastWrite   *time.Time `json:"last_write,omitempty"`
	Watchers    int        `json:"watchers"`
	FileExists  bool       `json:"file_exists"`
	LockHeld    bool       `json:"lock_held"`
	LockTimeout string     `json:"lock_timeout"`
}

// State implements introspection.Introspectable.
func (s *Store[T]) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Path:        s.Path,
		Format:      s.codec.Format(),
		LockPath:    s.lock.path,
		Strict:      s.config.Strict,
		Writes:      s.writeCount,
		LastWrite:   s.lastWrite,
		Watchers:    s.watchers,
		FileExists:  exists(s.Path),
		LockHeld:    exists(s.lock.path),
		LockTimeout: s.config.LockTimeout.String(),
	}
}

// ComponentType implements introspection.Component.
func (s *Store[T]) ComponentType() string {
	return "file"
}

var _ introspection.Introspectable = (*Store[struct{}])(nil)
var _ introspection.Component = (*Store[struct{}])(nil)
