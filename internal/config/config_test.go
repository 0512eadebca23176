package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) failed: %v", err)
	}
	if cfg != DefaultRunnerConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultRunnerConfig())
	}
}

func TestDerivedGeometry(t *testing.T) {
	cfg := DefaultRunnerConfig()

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"GroundLine", cfg.GroundLine(), -85},
		{"RestingHeight", cfg.RestingHeight(), -55},
		{"PlayerX", cfg.PlayerX(), -260},
		{"SpawnX", cfg.SpawnX(), 400},
		{"SpawnY", cfg.SpawnY(), -62.5},
		{"DespawnX", cfg.DespawnX(), 1200},
	}

	for _, tc := range tests {
		if tc.got != tc.expected {
			t.Errorf("%s() = %v, expected %v", tc.name, tc.got, tc.expected)
		}
	}
}

func TestParsePartialOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("playfield_width: 800\nphysics:\n  gravity: 900\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.PlayfieldWidth != 800 {
		t.Errorf("PlayfieldWidth = %v, expected 800", cfg.PlayfieldWidth)
	}
	if cfg.Physics.Gravity != 900 {
		t.Errorf("Gravity = %v, expected 900", cfg.Physics.Gravity)
	}
	if cfg.Physics.JumpVelocity != 300 {
		t.Errorf("JumpVelocity = %v, expected default 300", cfg.Physics.JumpVelocity)
	}
	if cfg.PlayerX() != -360 {
		t.Errorf("PlayerX() = %v, expected -360", cfg.PlayerX())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunnerConfig)
	}{
		{"zero width", func(c *RunnerConfig) { c.PlayfieldWidth = 0 }},
		{"negative height", func(c *RunnerConfig) { c.PlayfieldHeight = -1 }},
		{"ground band too tall", func(c *RunnerConfig) { c.GroundBandHeight = 200 }},
		{"zero spawn period", func(c *RunnerConfig) { c.ObstacleSpawnPeriod = 0 }},
		{"flat player", func(c *RunnerConfig) { c.Player.Height = 0 }},
		{"thin obstacle", func(c *RunnerConfig) { c.Obstacle.Width = 0 }},
		{"negative gravity", func(c *RunnerConfig) { c.Physics.Gravity = -1 }},
		{"NaN width", func(c *RunnerConfig) { c.PlayfieldWidth = math.NaN() }},
		{"infinite spawn period", func(c *RunnerConfig) { c.ObstacleSpawnPeriod = math.Inf(1) }},
		{"NaN speed", func(c *RunnerConfig) { c.BaseObstacleSpeed = math.NaN() }},
		{"infinite gravity", func(c *RunnerConfig) { c.Physics.Gravity = math.Inf(1) }},
		{"NaN spawn margin", func(c *RunnerConfig) { c.Obstacle.SpawnMargin = math.NaN() }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}

	if err := DefaultRunnerConfig().Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	if _, err := Parse([]byte("playfield_width: [")); err == nil {
		t.Error("Parse() should fail on malformed YAML")
	}
	if _, err := Parse([]byte("obstacle_spawn_period: -1")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Parse() = %v, expected ErrInvalidConfig", err)
	}
}

func TestParseRejectsNonFinite(t *testing.T) {
	for _, doc := range []string{
		"playfield_width: .nan",
		"obstacle_spawn_period: .inf",
		"base_obstacle_speed: .nan",
		"physics:\n  jump_velocity: -.inf",
	} {
		if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Parse(%q) = %v, expected ErrInvalidConfig", doc, err)
		}
	}
}

func TestLoadRunnerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("base_obstacle_speed: -350\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner() failed: %v", err)
	}
	if cfg.BaseObstacleSpeed != -350 {
		t.Errorf("BaseObstacleSpeed = %v, expected -350", cfg.BaseObstacleSpeed)
	}

	if _, err := LoadRunner(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadRunner() with a missing custom path should fail")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultRunnerConfig())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg != DefaultRunnerConfig() {
		t.Errorf("round trip = %+v, expected defaults", cfg)
	}
}

func TestPresets(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != "" {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset should reject unknown names")
	}

	hard := DefaultRunnerConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.BaseObstacleSpeed != -300 || hard.ObstacleSpawnPeriod != 2.25 {
		t.Errorf("hard preset gave speed %v period %v", hard.BaseObstacleSpeed, hard.ObstacleSpawnPeriod)
	}

	normal := DefaultRunnerConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if normal != DefaultRunnerConfig() {
		t.Error("normal preset should not change the config")
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte("playfield_width: 600\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("playfield_width: 900\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-w.Reloads:
		if r.Err != nil {
			t.Fatalf("reload error: %v", r.Err)
		}
		if r.Config.PlayfieldWidth != 900 {
			t.Errorf("reloaded PlayfieldWidth = %v, expected 900", r.Config.PlayfieldWidth)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload received")
	}
}
