package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Analysis.BootstrapTrials != 1000 {
		t.Errorf("BootstrapTrials = %d, want 1000", cfg.Analysis.BootstrapTrials)
	}
	if cfg.Analysis.Confidence != 0.95 {
		t.Errorf("Confidence = %v, want 0.95", cfg.Analysis.Confidence)
	}
	if cfg.Analysis.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Analysis.Seed)
	}
	if cfg.Analysis.Workers != 1 {
		t.Errorf("Workers = %d, want 1", cfg.Analysis.Workers)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Server.Port)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BOOTSTRAP_TRIALS", "250")
	t.Setenv("CONFIDENCE_LEVEL", "0.9")
	t.Setenv("BOOTSTRAP_WORKERS", "4")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Analysis.BootstrapTrials != 250 {
		t.Errorf("BootstrapTrials = %d, want 250", cfg.Analysis.BootstrapTrials)
	}
	if cfg.Analysis.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", cfg.Analysis.Confidence)
	}
	if cfg.Analysis.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Analysis.Workers)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("Port = %s, want 9000", cfg.Server.Port)
	}
}

func TestLoad_DatabaseToggle(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Enabled {
		t.Error("database should be disabled without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/ecostat_test")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Database.Enabled {
		t.Error("database should be enabled with DATABASE_URL set")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero trials", "BOOTSTRAP_TRIALS", "0"},
		{"confidence of one", "CONFIDENCE_LEVEL", "1.0"},
		{"negative confidence", "CONFIDENCE_LEVEL", "-0.5"},
		{"zero workers", "BOOTSTRAP_WORKERS", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load accepted %s=%s", tc.key, tc.value)
			}
		})
	}
}
