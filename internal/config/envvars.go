// ABOUTME: Environment handling: TEXTPOOL_* overrides and ${VAR} expansion in string fields
// ABOUTME: Overrides win over both config files; unset ${VAR} references become empty

package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Environment variables that override settings files.
const (
	EnvUsePool     = "TEXTPOOL_USE_POOL"
	EnvGuard       = "TEXTPOOL_GUARD"
	EnvLengthCheck = "TEXTPOOL_LENGTH_CHECK"
	EnvLogLevel    = "TEXTPOOL_LOG_LEVEL"
)

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// ApplyEnv copies set TEXTPOOL_* variables into s.
func ApplyEnv(s *Settings) error {
	if v, ok := os.LookupEnv(EnvUsePool); ok {
		on, err := parseSwitch(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvUsePool, err)
		}
		s.SetPool(on)
	}
	if v, ok := os.LookupEnv(EnvGuard); ok {
		s.Guard = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv(EnvLengthCheck); ok {
		s.LengthCheck = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		s.LogLevel = v
	}
	return nil
}

// parseSwitch accepts the usual spellings of a boolean toggle.
func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true, nil
	case "0", "false", "off", "no":
		return false, nil
	}
	return false, fmt.Errorf("unrecognized toggle %q", v)
}

// ResolveEnvVars expands ${VAR} patterns in string fields of Settings.
func ResolveEnvVars(s *Settings) {
	s.SampleText = expandEnv(s.SampleText)
	s.LogLevel = expandEnv(s.LogLevel)
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
