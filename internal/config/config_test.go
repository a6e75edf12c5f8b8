package config

import (
	"os"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	reset()
	os.Unsetenv(EnvVar)
	cfg := Get()
	if cfg.InterceptGapSeconds != 1.0 {
		t.Fatalf("expected default intercept gap of 1.0, got %f", cfg.InterceptGapSeconds)
	}
	if len(cfg.TimeStepLevels) != 13 {
		t.Fatalf("expected 13 time step levels, got %d", len(cfg.TimeStepLevels))
	}
}

func TestGetOverrideFromFile(t *testing.T) {
	reset()
	f, err := os.CreateTemp(t.TempDir(), "cfg-*.toml")
	if err != nil {
		t.Fatalf("failed to create temp config: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString("intercept_gap_seconds = 2.5\n"); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	os.Setenv(EnvVar, f.Name())
	defer os.Unsetenv(EnvVar)

	cfg := Get()
	if cfg.InterceptGapSeconds != 2.5 {
		t.Fatalf("expected overridden intercept gap of 2.5, got %f", cfg.InterceptGapSeconds)
	}
	reset()
}
