// ABOUTME: Tests for TEXTPOOL_* overrides and ${VAR} expansion
// ABOUTME: Env-mutating tests do not run in parallel

package config

import "testing"

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEXTPOOL_TEST_A", "alpha")

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"${TEXTPOOL_TEST_A}", "alpha"},
		{"x ${TEXTPOOL_TEST_A} y", "x alpha y"},
		{"${TEXTPOOL_TEST_UNSET_VAR}", ""},
		{"$TEXTPOOL_TEST_A", "$TEXTPOOL_TEST_A"},
	}
	for _, tt := range tests {
		if got := expandEnv(tt.in); got != tt.want {
			t.Errorf("expandEnv(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvUsePool, "0")
	t.Setenv(EnvLengthCheck, " Panic ")
	t.Setenv(EnvLogLevel, "debug")

	var s Settings
	if err := ApplyEnv(&s); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if s.PoolEnabled() {
		t.Error("PoolEnabled() = true; want false")
	}
	if s.LengthCheck != LengthCheckPanic {
		t.Errorf("LengthCheck = %q; want %q", s.LengthCheck, LengthCheckPanic)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q; want debug", s.LogLevel)
	}
}

func TestApplyEnv_BadToggle(t *testing.T) {
	t.Setenv(EnvUsePool, "maybe")

	var s Settings
	if err := ApplyEnv(&s); err == nil {
		t.Error("ApplyEnv: want error for unrecognized toggle")
	}
}

func TestParseSwitch(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"1", "true", "ON", "yes"} {
		if on, err := parseSwitch(v); err != nil || !on {
			t.Errorf("parseSwitch(%q) = %v, %v; want true, nil", v, on, err)
		}
	}
	for _, v := range []string{"0", "False", "off", "no"} {
		if on, err := parseSwitch(v); err != nil || on {
			t.Errorf("parseSwitch(%q) = %v, %v; want false, nil", v, on, err)
		}
	}
}
