package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// devDirName is the sandbox directory used by development runs.
const devDirName = "snipperclipper-dev"

// IsDevRun reports whether the process was started by `go run` or `go test`.
// Both build the binary into a temporary directory; test binaries also end in ".test".
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveDataDir returns dir unchanged unless forceTemp is set. In that case
// a directory already inside the system temp directory is kept (t.TempDir()
// for instance) and anything else is re-rooted under <tmp>/snipperclipper-dev.
func ResolveDataDir(dir string, forceTemp bool) string {
	if !forceTemp {
		return dir
	}

	clean := filepath.Clean(dir)
	if rel, err := filepath.Rel(os.TempDir(), clean); err == nil && !strings.HasPrefix(rel, "..") {
		return clean
	}

	name := filepath.Base(clean)
	if dir == "" || name == "." || name == string(os.PathSeparator) {
		name = "default"
	}
	return filepath.Join(os.TempDir(), devDirName, name)
}
