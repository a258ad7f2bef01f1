// ABOUTME: Settings loading with global + project YAML config merge and env overrides
// ABOUTME: Carries the pooling toggle, guard level, length check, and layout defaults

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/textpool-go/internal/log"
)

// Guard levels accepted in settings.
const (
	GuardTop    = "top"
	GuardStrict = "strict"
)

// Length-check modes accepted in settings.
const (
	LengthCheckReport = "report"
	LengthCheckPanic  = "panic"
)

// Settings holds the merged configuration.
type Settings struct {
	UsePool      *bool  `yaml:"use_pool,omitempty"`
	Guard        string `yaml:"guard,omitempty"`
	LengthCheck  string `yaml:"length_check,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
	SampleText   string `yaml:"sample_text,omitempty"`
	Width        int    `yaml:"width,omitempty"`
	LinesPerPage int    `yaml:"lines_per_page,omitempty"`
}

// PoolEnabled reports whether pooling is on. Pooling is on unless a
// settings layer turned it off.
func (s *Settings) PoolEnabled() bool {
	return s.UsePool == nil || *s.UsePool
}

// SetPool records an explicit pooling choice.
func (s *Settings) SetPool(on bool) {
	s.UsePool = &on
}

// Validate rejects unknown enum values.
func (s *Settings) Validate() error {
	var errs []error
	switch s.Guard {
	case "", GuardTop, GuardStrict:
	default:
		errs = append(errs, fmt.Errorf("guard: unknown value %q (want %s or %s)", s.Guard, GuardTop, GuardStrict))
	}
	switch s.LengthCheck {
	case "", LengthCheckReport, LengthCheckPanic:
	default:
		errs = append(errs, fmt.Errorf("length_check: unknown value %q (want %s or %s)", s.LengthCheck, LengthCheckReport, LengthCheckPanic))
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if s.Width < 0 {
		errs = append(errs, fmt.Errorf("width: must not be negative, got %d", s.Width))
	}
	if s.LinesPerPage < 0 {
		errs = append(errs, fmt.Errorf("lines_per_page: must not be negative, got %d", s.LinesPerPage))
	}
	return errors.Join(errs...)
}

// Load reads and merges global and project-local settings, applies
// environment overrides, expands ${VAR} references, and validates.
// Missing files are not an error.
func Load(projectRoot string) (*Settings, error) {
	return LoadFiles(GlobalConfigFile(), ProjectConfigFile(projectRoot))
}

// LoadFiles is Load with explicit file paths.
func LoadFiles(globalPath, projectPath string) (*Settings, error) {
	global, err := loadFile(globalPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(projectPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	if err := ApplyEnv(merged); err != nil {
		return nil, err
	}
	ResolveEnvVars(merged)
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return merged, nil
}

// loadFile reads Settings from a YAML file. Returns zero Settings if the
// file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays project settings onto global settings.
// Non-zero project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		project = &Settings{}
	}

	result := *global

	if project.UsePool != nil {
		result.SetPool(*project.UsePool)
	}
	if project.Guard != "" {
		result.Guard = project.Guard
	}
	if project.LengthCheck != "" {
		result.LengthCheck = project.LengthCheck
	}
	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}
	if project.SampleText != "" {
		result.SampleText = project.SampleText
	}
	if project.Width != 0 {
		result.Width = project.Width
	}
	if project.LinesPerPage != 0 {
		result.LinesPerPage = project.LinesPerPage
	}

	return &result
}
