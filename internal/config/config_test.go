package config

import (
	"flag"
	"testing"
)

// TestDefaultValid verifies the defaults pass validation
func TestDefaultValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected default config to be valid, got %v", err)
	}
	if cfg.Bins != 64 {
		t.Errorf("Expected 64 bins, got %d", cfg.Bins)
	}
	if cfg.Smoothing != 0.8 {
		t.Errorf("Expected smoothing 0.8, got %f", cfg.Smoothing)
	}
	if cfg.ScaleMin != 0.9 || cfg.ScaleMax != 1 {
		t.Errorf("Expected scale range 0.9..1, got %f..%f", cfg.ScaleMin, cfg.ScaleMax)
	}
}

func TestRegisterFlags(t *testing.T) {
	cfg := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)

	err := fs.Parse([]string{"-bins", "128", "-circles", "3", "-export", "-out", "tmp", "-seed", "42"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Bins != 128 || cfg.CircleCount != 3 || !cfg.Export || cfg.ExportDir != "tmp" || cfg.Seed != 42 {
		t.Errorf("Flags not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"bins not power of two", func(c *Config) { c.Bins = 100 }},
		{"bins too small", func(c *Config) { c.Bins = 8 }},
		{"smoothing one", func(c *Config) { c.Smoothing = 1 }},
		{"reversed scale", func(c *Config) { c.ScaleMin = 1.2 }},
		{"outer layers beyond layers", func(c *Config) { c.OuterLayers = c.Layers + 1 }},
		{"threshold above 255", func(c *Config) { c.BassThreshold = 300 }},
		{"spawn chance above one", func(c *Config) { c.SpawnChance = 1.5 }},
		{"no fade", func(c *Config) { c.FadeStep = 0 }},
		{"radius range", func(c *Config) { c.CircleMinRadius = 0.5 }},
		{"export fps", func(c *Config) { c.Export = true; c.ExportFPS = 0 }},
	}

	for _, tt := range tests {
		cfg := Default()
		tt.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
