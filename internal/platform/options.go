package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/snipperclipper/pkg/core"
)

// Backend names a storage variant.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendSSH    Backend = "ssh"
)

// Backends lists the accepted backend names.
var Backends = []Backend{BackendFile, BackendSQLite, BackendSSH}

// options holds the internal configuration for the snippet service.
type options struct {
	logger       *slog.Logger
	backend      Backend
	snippetsPath string
	configPath   string
	databasePath string
	remote       string
	strict       bool
	lockTimeout  time.Duration
	devSafety    bool
	forceTemp    bool
	projectFrom  string
	env          func(string) string

	snippetStorage core.Storage[core.CollectionData]
	configStorage  core.Storage[core.ConfigData]
}

// Option defines a functional option for configuring the service.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		devSafety: true,
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBackend selects the storage variant by name ("file", "sqlite", "ssh").
// When unset, SC_STORAGE decides, then "file".
func WithBackend(name Backend) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithSnippetsPath overrides the collection file (and SC_SNIPPETS).
func WithSnippetsPath(path string) Option {
	return func(o *options) {
		o.snippetsPath = path
	}
}

// WithConfigPath overrides the configuration file (and SC_CONFIG).
func WithConfigPath(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// WithDatabasePath overrides the SQLite database file (and SC_DATABASE).
func WithDatabasePath(path string) Option {
	return func(o *options) {
		o.databasePath = path
	}
}

// WithRemote sets the ssh backend target, e.g. "ssh://user@host:22/srv/snippets.json".
func WithRemote(target string) Option {
	return func(o *options) {
		o.remote = target
	}
}

// WithStrict makes the file backend reject documents with unknown fields.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithLockTimeout bounds how long a write waits for another writer.
// Zero keeps the backend default.
func WithLockTimeout(d time.Duration) Option {
	return func(o *options) {
		o.lockTimeout = d
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true) the default data directory is replaced by a temporary one,
// so development runs never touch the user's real snippets. Explicit paths
// are always honoured.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithForceTemp places the default data directory under the system temp
// directory regardless of how the process was started.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithProject uses the nearest .snipperclipper directory at or above start
// as the data directory instead of the per-user one.
func WithProject(start string) Option {
	return func(o *options) {
		o.projectFrom = start
	}
}

// WithEnv replaces os.Getenv as the source of SC_* variables.
func WithEnv(lookup func(string) string) Option {
	return func(o *options) {
		o.env = lookup
	}
}

// WithSnippetStorage injects a collection backend (e.g. a fake), skipping backend selection.
func WithSnippetStorage(s core.Storage[core.CollectionData]) Option {
	return func(o *options) {
		o.snippetStorage = s
	}
}

// WithConfigStorage injects a configuration backend, skipping backend selection.
func WithConfigStorage(s core.Storage[core.ConfigData]) Option {
	return func(o *options) {
		o.configStorage = s
	}
}
