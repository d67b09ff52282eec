package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Algorithm != "quick" {
		t.Errorf("expected algorithm quick, got %s", cfg.Algorithm)
	}
	if cfg.DataSize <= 0 {
		t.Error("data size should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown algorithm", func(c *Config) { c.Algorithm = "quantum" }},
		{"negative size", func(c *Config) { c.DataSize = -1 }},
		{"zero speed", func(c *Config) { c.AnimationSpeed = 0 }},
		{"zero frame rate", func(c *Config) { c.FrameRate = 0 }},
		{"unknown render mode", func(c *Config) { c.RenderMode = "vulkan" }},
		{"unknown data type", func(c *Config) { c.DataType = "fibonacci" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sortviz.yaml")
	cfg := DefaultConfig()
	cfg.Algorithm = "heap"
	cfg.DataSize = 99
	cfg.Tuning.InsertionCutoff = 7

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Algorithm != "heap" || loaded.DataSize != 99 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	if loaded.Tuning.InsertionCutoff != 7 {
		t.Errorf("tuning block lost: %+v", loaded.Tuning)
	}
}

func TestLoadAppliesDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("algorithm: merge\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Algorithm != "merge" {
		t.Errorf("expected merge, got %s", cfg.Algorithm)
	}
	if cfg.FrameRate != DefaultFrameRate {
		t.Errorf("expected default frame rate, got %d", cfg.FrameRate)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("algorithm: nope\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("classroom")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Algorithm != "insertion" {
		t.Errorf("expected insertion, got %s", cfg.Algorithm)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}
	if GetPreset("nope") != nil {
		t.Error("unknown preset should be nil")
	}
}

func TestAllPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
