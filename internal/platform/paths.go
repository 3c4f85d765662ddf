package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment variables read by the platform layer.
const (
	EnvConfig   = "SC_CONFIG"
	EnvSnippets = "SC_SNIPPETS"
	EnvStorage  = "SC_STORAGE"
	EnvDatabase = "SC_DATABASE"
	EnvRemote   = "SC_REMOTE"
)

// AppDir is the directory created under the user configuration directory.
const AppDir = "snipperclipper"

// Default file names inside the data directory.
const (
	SnippetsFile = "snippets.json"
	ConfigFile   = "config.json"
	DatabaseFile = "snipperclipper.db"
)

// Paths is where each aggregate lives for one invocation.
type Paths struct {
	Dir      string `json:"dir"`
	Snippets string `json:"snippets"`
	Config   string `json:"config"`
	Database string `json:"database"`
	Remote   string `json:"remote,omitempty"`
	Sandbox  bool   `json:"sandbox,omitempty"`
}

// DefaultDir returns <user config dir>/snipperclipper. os.UserConfigDir honours
// XDG_CONFIG_HOME on Unix and %AppData% on Windows.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config directory: %w", err)
	}
	return filepath.Join(base, AppDir), nil
}

// resolvePaths applies, in order of precedence, options, environment and defaults.
// Only the per-user directory is subject to the development sandbox.
func resolvePaths(o *options) (Paths, error) {
	getenv := o.env
	if getenv == nil {
		getenv = os.Getenv
	}

	var p Paths
	if o.projectFrom != "" {
		root, err := FindRoot(o.projectFrom)
		if err != nil {
			return Paths{}, err
		}
		p.Dir = root
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return Paths{}, err
		}
		p.Sandbox = o.forceTemp || (o.devSafety && IsDevRun())
		p.Dir = ResolveDataDir(dir, p.Sandbox)
	}

	p.Snippets = firstNonEmpty(o.snippetsPath, getenv(EnvSnippets), filepath.Join(p.Dir, SnippetsFile))
	p.Config = firstNonEmpty(o.configPath, getenv(EnvConfig), filepath.Join(p.Dir, ConfigFile))
	p.Database = firstNonEmpty(o.databasePath, getenv(EnvDatabase), filepath.Join(p.Dir, DatabaseFile))
	p.Remote = firstNonEmpty(o.remote, getenv(EnvRemote))
	return p, nil
}

func resolveBackend(o *options) (Backend, error) {
	getenv := o.env
	if getenv == nil {
		getenv = os.Getenv
	}

	b := Backend(firstNonEmpty(string(o.backend), getenv(EnvStorage), string(BackendFile)))
	for _, known := range Backends {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown storage backend %q (want file, sqlite or ssh)", b)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
