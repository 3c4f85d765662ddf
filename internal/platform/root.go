package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectDirName marks a project-local data directory.
const ProjectDirName = ".snipperclipper"

// FindRoot walks up from startDir looking for a ProjectDirName directory and
// returns its absolute path. It fails when the filesystem root is reached.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		candidate := filepath.Join(dir, ProjectDirName)
		if isDir(candidate) {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no %s directory found above %s", ProjectDirName, abs)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
