// ABOUTME: Tests for config path resolution
// ABOUTME: Overrides HOME to pin the global directory

package config

import (
	"path/filepath"
	"testing"
)

func TestPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got, want := GlobalConfigFile(), filepath.Join(home, ".textpool", "config.yaml"); got != want {
		t.Errorf("GlobalConfigFile() = %q; want %q", got, want)
	}
	if got, want := ProjectConfigFile("/work"), filepath.Join("/work", ".textpool", "config.yaml"); got != want {
		t.Errorf("ProjectConfigFile() = %q; want %q", got, want)
	}
}
