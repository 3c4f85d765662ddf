package snipperclipper

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/snipperclipper/internal/platform"
	"github.com/aretw0/snipperclipper/pkg/core"
)

// --- Types ---

// App is a loaded snippet service bound to its storage.
type App = platform.App

// Snippet is a public alias for the domain entity.
type Snippet = core.Snippet

// Backend names a storage variant.
type Backend = platform.Backend

// Paths is where each aggregate lives.
type Paths = platform.Paths

const (
	BackendFile   = platform.BackendFile
	BackendSQLite = platform.BackendSQLite
	BackendSSH    = platform.BackendSSH
)

// --- Configuration ---

// Option defines a functional option for configuring the service.
type Option = platform.Option

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithBackend selects the storage variant.
func WithBackend(b Backend) Option {
	return platform.WithBackend(b)
}

// WithSnippetsPath overrides the collection file.
func WithSnippetsPath(path string) Option {
	return platform.WithSnippetsPath(path)
}

// WithConfigPath overrides the configuration file.
func WithConfigPath(path string) Option {
	return platform.WithConfigPath(path)
}

// WithDatabasePath overrides the SQLite database file.
func WithDatabasePath(path string) Option {
	return platform.WithDatabasePath(path)
}

// WithRemote sets the ssh backend target.
func WithRemote(target string) Option {
	return platform.WithRemote(target)
}

// WithStrict rejects stored documents carrying unknown fields.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithLockTimeout bounds how long a write waits for another writer.
func WithLockTimeout(d time.Duration) Option {
	return platform.WithLockTimeout(d)
}

// WithDevSafety controls the sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithForceTemp forces the sandbox directory.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithProject uses the nearest .snipperclipper directory above start.
func WithProject(start string) Option {
	return platform.WithProject(start)
}

// WithSnippetStorage injects a custom collection backend.
func WithSnippetStorage(s core.Storage[core.CollectionData]) Option {
	return platform.WithSnippetStorage(s)
}

// WithConfigStorage injects a custom configuration backend.
func WithConfigStorage(s core.Storage[core.ConfigData]) Option {
	return platform.WithConfigStorage(s)
}

// --- Entry points ---

// New builds and loads the service. Close the returned App when done.
func New(ctx context.Context, opts ...Option) (*App, error) {
	return platform.New(ctx, opts...)
}

// DefaultDir returns the per-user data directory.
func DefaultDir() (string, error) {
	return platform.DefaultDir()
}
