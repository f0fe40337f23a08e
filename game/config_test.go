package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "formation.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
	if cfg.Field().W != WIDTH || cfg.Field().H != HEIGHT {
		t.Errorf("Unexpected field %+v", cfg.Field())
	}
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
formation:
  maxDivers: 2
player:
  startLives: 5
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Formation.MaxDivers != 2 || cfg.Player.StartLives != 5 {
		t.Errorf("Overrides not applied: %+v %+v", cfg.Formation, cfg.Player)
	}
	if cfg.Grid.Rows != GridRows || cfg.Player.Speed != PlayerSpeed {
		t.Error("Unset fields should keep their defaults")
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}

	if _, err := LoadConfig(writeConfig(t, "grid: [1, 2")); err == nil {
		t.Error("Expected a parse error")
	}

	_, err := LoadConfig(writeConfig(t, "player:\n  startLives: 9\n"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Screen.Width = 0 }},
		{"negative inset", func(c *Config) { c.Screen.HitboxInset = -1 }},
		{"grid too wide", func(c *Config) { c.Grid.Cols = 20 }},
		{"grid too tall", func(c *Config) { c.Grid.Rows = 30 }},
		{"no divers", func(c *Config) { c.Formation.MaxDivers = 0 }},
		{"inverted dive interval", func(c *Config) { c.Formation.DiveIntervalMin = 5 }},
		{"fire chance above one", func(c *Config) { c.Enemy.DiveFireChance = 1.5 }},
		{"zero fire rate", func(c *Config) { c.Player.FireRate = 0 }},
		{"zero lifespan", func(c *Config) { c.PowerUps.Lifespan = 0 }},
		{"frame clamp below step", func(c *Config) { c.Timing.MaxFrame = 0.001 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfig_GridOriginCentered(t *testing.T) {
	cfg := DefaultConfig()
	left := cfg.GridOriginX()
	right := left + float64(cfg.Grid.Cols-1)*cfg.Grid.SpacingX
	if !almostEqual(left+right, cfg.Screen.Width, 1e-9) {
		t.Errorf("Grid not centered: %f..%f", left, right)
	}
}
