package platform

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strconv"

	"github.com/aretw0/snipperclipper/pkg/adapters/fs"
	"github.com/aretw0/snipperclipper/pkg/adapters/remote"
	"github.com/aretw0/snipperclipper/pkg/adapters/sqlite"
	"github.com/aretw0/snipperclipper/pkg/core"
)

// App is a loaded service together with the resources it was built on.
type App struct {
	*core.Service

	Backend Backend
	Paths   Paths

	db *sql.DB
}

// New resolves paths and the backend, builds both aggregates and loads them.
// Load failures never abort: they fall back to defaults (see Service.Outcomes).
//
//	app, err := snipperclipper.New(ctx, snipperclipper.WithBackend("sqlite"))
//	defer app.Close()
func New(ctx context.Context, opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	paths, err := resolvePaths(o)
	if err != nil {
		return nil, err
	}
	backend, err := resolveBackend(o)
	if err != nil {
		return nil, err
	}
	if paths.Sandbox {
		logger.Debug("running in sandbox mode (dev run)", "dir", paths.Dir)
	}

	app := &App{Backend: backend, Paths: paths}

	snippets, config, err := app.storages(ctx, o, logger)
	if err != nil {
		return nil, err
	}
	if o.snippetStorage != nil {
		snippets = o.snippetStorage
	}
	if o.configStorage != nil {
		config = o.configStorage
	}

	app.Service = core.NewService(
		core.NewCollection(snippets, logger),
		core.NewConfig(config, logger),
		logger,
	)
	app.Service.Load(ctx)

	logger.Debug("service ready", "backend", backend, "snippets", paths.Snippets, "config", paths.Config)
	return app, nil
}

func (a *App) storages(ctx context.Context, o *options, logger *slog.Logger) (core.Storage[core.CollectionData], core.Storage[core.ConfigData], error) {
	if o.snippetStorage != nil && o.configStorage != nil {
		return nil, nil, nil
	}

	switch a.Backend {
	case BackendFile:
		return fileStorages(a.Paths, o, logger)
	case BackendSQLite:
		db, err := sqlite.Open(ctx, a.Paths.Database, o.lockTimeout)
		if err != nil {
			return nil, nil, err
		}
		a.db = db
		snippets, err := sqlite.NewStore[core.CollectionData](db, "snippets", logger)
		if err != nil {
			return nil, nil, errors.Join(err, db.Close())
		}
		config, err := sqlite.NewStore[core.ConfigData](db, "config", logger)
		if err != nil {
			return nil, nil, errors.Join(err, db.Close())
		}
		return snippets, config, nil
	case BackendSSH:
		target, err := ParseRemote(a.Paths.Remote)
		if err != nil {
			return nil, nil, err
		}
		// The configuration document sits next to the remote collection.
		return remote.NewShell[core.CollectionData](target.Host, target.Port, target.User, target.Path),
			remote.NewShell[core.ConfigData](target.Host, target.Port, target.User, siblingConfig(target.Path)),
			nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", a.Backend)
	}
}

func fileStorages(p Paths, o *options, logger *slog.Logger) (core.Storage[core.CollectionData], core.Storage[core.ConfigData], error) {
	snippets, err := fs.NewStore[core.CollectionData](fs.Config{
		Path:        p.Snippets,
		Logger:      logger,
		Strict:      o.strict,
		LockTimeout: o.lockTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("snippet store: %w", err)
	}

	config, err := fs.NewStore[core.ConfigData](fs.Config{
		Path:        p.Config,
		Logger:      logger,
		Strict:      o.strict,
		LockTimeout: o.lockTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("config store: %w", err)
	}
	return snippets, config, nil
}

// Close releases the database of the sqlite backend. It is a no-op otherwise.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// RemoteTarget is a parsed SC_REMOTE value.
type RemoteTarget struct {
	Host string
	Port int
	User string
	Path string
}

// ParseRemote parses "ssh://[user@]host[:port]/path".
func ParseRemote(target string) (RemoteTarget, error) {
	if target == "" {
		return RemoteTarget{}, fmt.Errorf("ssh backend needs a target (set %s)", EnvRemote)
	}

	u, err := url.Parse(target)
	if err != nil {
		return RemoteTarget{}, fmt.Errorf("invalid remote %q: %w", target, err)
	}
	if u.Scheme != "ssh" || u.Hostname() == "" {
		return RemoteTarget{}, fmt.Errorf("invalid remote %q: want ssh://[user@]host[:port]/path", target)
	}

	rt := RemoteTarget{Host: u.Hostname(), Path: u.Path, User: u.User.Username()}
	if p := u.Port(); p != "" {
		rt.Port, err = strconv.Atoi(p)
		if err != nil {
			return RemoteTarget{}, fmt.Errorf("invalid remote port %q: %w", p, err)
		}
	}
	if rt.Path == "" || rt.Path == "/" {
		rt.Path = "/" + SnippetsFile
	}
	return rt, nil
}

func siblingConfig(snippetsPath string) string {
	return path.Join(path.Dir(snippetsPath), ConfigFile)
}
