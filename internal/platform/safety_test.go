package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDataDir(t *testing.T) {
	t.Parallel()

	tempRoot := os.TempDir()
	devBase := filepath.Join(tempRoot, devDirName)

	tests := []struct {
		name      string
		dir       string
		forceTemp bool
		expected  string
	}{
		{
			name:     "Normal Mode - Specific Path",
			dir:      "/home/ana/.config/snipperclipper",
			expected: "/home/ana/.config/snipperclipper",
		},
		{
			name:      "Sandbox - Empty Path",
			dir:       "",
			forceTemp: true,
			expected:  filepath.Join(devBase, "default"),
		},
		{
			name:      "Sandbox - Current Dir",
			dir:       ".",
			forceTemp: true,
			expected:  filepath.Join(devBase, "default"),
		},
		{
			name:      "Sandbox - User Config Dir",
			dir:       "/home/ana/.config/snipperclipper",
			forceTemp: true,
			expected:  filepath.Join(devBase, "snipperclipper"),
		},
		{
			name:      "Sandbox - Clean Name",
			dir:       "../bad/path",
			forceTemp: true,
			expected:  filepath.Join(devBase, "path"),
		},
		{
			name:      "Sandbox - Already Under Temp",
			dir:       filepath.Join(tempRoot, "my-test"),
			forceTemp: true,
			expected:  filepath.Join(tempRoot, "my-test"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveDataDir(tt.dir, tt.forceTemp)
			if got != tt.expected {
				t.Errorf("ResolveDataDir(%q, %v) = %q; want %q", tt.dir, tt.forceTemp, got, tt.expected)
			}
		})
	}
}

func TestIsDevRun(t *testing.T) {
	// Test binaries are dev runs.
	if !IsDevRun() {
		t.Errorf("IsDevRun() = false; want true inside go test")
	}
}
