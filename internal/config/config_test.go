// ABOUTME: Tests for settings loading, merging, and validation
// ABOUTME: Uses t.TempDir config files and t.Setenv overrides

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	off := false
	global := &Settings{Guard: GuardTop, LogLevel: "debug", Width: 40}
	project := &Settings{UsePool: &off, Guard: GuardStrict, LinesPerPage: 3}

	got := merge(global, project)
	if got.PoolEnabled() {
		t.Error("PoolEnabled() = true; want false")
	}
	if got.Guard != GuardStrict {
		t.Errorf("Guard = %q; want %q", got.Guard, GuardStrict)
	}
	if got.LogLevel != "debug" {
		t.Errorf("LogLevel = %q; want %q", got.LogLevel, "debug")
	}
	if got.Width != 40 {
		t.Errorf("Width = %d; want 40", got.Width)
	}
	if got.LinesPerPage != 3 {
		t.Errorf("LinesPerPage = %d; want 3", got.LinesPerPage)
	}
	if global.UsePool != nil {
		t.Error("merge mutated the global settings")
	}
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	got := merge(nil, nil)
	if !got.PoolEnabled() {
		t.Error("PoolEnabled() = false; want true for empty settings")
	}
}

func TestLoadFile_NotExist(t *testing.T) {
	t.Parallel()

	_, err := loadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("loadFile error = %v; want not-exist", err)
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	globalPath := filepath.Join(dir, "global", "config.yaml")
	projectPath := filepath.Join(dir, "project", "config.yaml")
	writeFile(t, globalPath, "use_pool: false\nguard: strict\nwidth: 60\n")
	writeFile(t, projectPath, "use_pool: true\nsample_text: \"hi ${TEXTPOOL_TEST_NAME}\"\n")
	t.Setenv("TEXTPOOL_TEST_NAME", "there")

	s, err := LoadFiles(globalPath, projectPath)
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if !s.PoolEnabled() {
		t.Error("PoolEnabled() = false; want project override true")
	}
	if s.Guard != GuardStrict {
		t.Errorf("Guard = %q; want %q", s.Guard, GuardStrict)
	}
	if s.Width != 60 {
		t.Errorf("Width = %d; want 60", s.Width)
	}
	if s.SampleText != "hi there" {
		t.Errorf("SampleText = %q; want %q", s.SampleText, "hi there")
	}
}

func TestLoadFiles_Missing(t *testing.T) {
	dir := t.TempDir()
	s, err := LoadFiles(filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml"))
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if !s.PoolEnabled() {
		t.Error("PoolEnabled() = false; want true")
	}
}

func TestLoadFiles_EnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "use_pool: true\nguard: top\n")
	t.Setenv(EnvUsePool, "off")
	t.Setenv(EnvGuard, "STRICT")

	s, err := LoadFiles(path, filepath.Join(dir, "none.yaml"))
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if s.PoolEnabled() {
		t.Error("PoolEnabled() = true; want env override false")
	}
	if s.Guard != GuardStrict {
		t.Errorf("Guard = %q; want %q", s.Guard, GuardStrict)
	}
}

func TestLoadFiles_BadYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "guard: [unclosed\n")

	if _, err := LoadFiles(path, filepath.Join(dir, "none.yaml")); err == nil {
		t.Error("LoadFiles: want parse error")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		s       Settings
		wantErr string
	}{
		{name: "empty", s: Settings{}},
		{name: "all valid", s: Settings{Guard: GuardStrict, LengthCheck: LengthCheckPanic, LogLevel: "warn"}},
		{name: "bad guard", s: Settings{Guard: "deep"}, wantErr: "guard"},
		{name: "bad length check", s: Settings{LengthCheck: "ignore"}, wantErr: "length_check"},
		{name: "bad log level", s: Settings{LogLevel: "loud"}, wantErr: "log_level"},
		{name: "negative width", s: Settings{Width: -1}, wantErr: "width"},
		{name: "negative lines", s: Settings{LinesPerPage: -2}, wantErr: "lines_per_page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v; want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v; want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}
