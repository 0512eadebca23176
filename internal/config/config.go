// Package config provides YAML-based configuration loading for the runner
// simulation and its hosts.
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid runner config")

// RunnerConfig contains all fixed parameters of a runner session.
// The five top-level keys are the recognized session options; the nested
// sections tune entity sizes and motion constants.
type RunnerConfig struct {
	PlayfieldWidth      float64 `yaml:"playfield_width"`
	PlayfieldHeight     float64 `yaml:"playfield_height"`
	GroundBandHeight    float64 `yaml:"ground_band_height"`
	BaseObstacleSpeed   float64 `yaml:"base_obstacle_speed"`   // negative = toward the player
	ObstacleSpawnPeriod float64 `yaml:"obstacle_spawn_period"` // seconds

	Player   PlayerConfig   `yaml:"player"`
	Obstacle ObstacleConfig `yaml:"obstacle"`
	Physics  PhysicsConfig  `yaml:"physics"`
}

// PlayerConfig defines the player's size and horizontal placement.
type PlayerConfig struct {
	Offset float64 `yaml:"offset"` // distance of the center from the left playfield edge
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObstacleConfig defines obstacle size and spawn placement.
type ObstacleConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	SpawnMargin float64 `yaml:"spawn_margin"` // distance past the right playfield edge
}

// PhysicsConfig defines the player's motion constants.
type PhysicsConfig struct {
	JumpVelocity float64 `yaml:"jump_velocity"` // units/s set on jump
	DuckImpulse  float64 `yaml:"duck_impulse"`  // units/s removed per frame while ducking in air
	Gravity      float64 `yaml:"gravity"`       // units/s²
}

// GroundLine returns the world y-coordinate of the ground's top surface.
// The playfield is centered on the origin with y growing upward.
func (c RunnerConfig) GroundLine() float64 {
	return -c.PlayfieldHeight/2 + c.GroundBandHeight
}

// RestingHeight returns the player's center y while standing on the ground.
func (c RunnerConfig) RestingHeight() float64 {
	return c.GroundLine() + c.Player.Height/2
}

// PlayerX returns the player's fixed center x.
func (c RunnerConfig) PlayerX() float64 {
	return -c.PlayfieldWidth/2 + c.Player.Offset
}

// SpawnX returns the center x at which obstacles appear.
func (c RunnerConfig) SpawnX() float64 {
	return c.PlayfieldWidth/2 + c.Obstacle.SpawnMargin
}

// SpawnY returns the center y of a freshly spawned obstacle.
func (c RunnerConfig) SpawnY() float64 {
	return c.GroundLine() + c.Obstacle.Height/2
}

// DespawnX returns the |x| beyond which obstacles are destroyed.
func (c RunnerConfig) DespawnX() float64 {
	return 2 * c.PlayfieldWidth
}

// Validate checks that the configuration describes a playable session.
func (c RunnerConfig) Validate() error {
	if name, ok := c.firstNonFinite(); ok {
		return fmt.Errorf("%w: %s must be finite", ErrInvalidConfig, name)
	}

	switch {
	case c.PlayfieldWidth <= 0 || c.PlayfieldHeight <= 0:
		return fmt.Errorf("%w: playfield must be positive, got %vx%v", ErrInvalidConfig, c.PlayfieldWidth, c.PlayfieldHeight)
	case c.GroundBandHeight < 0 || c.GroundBandHeight >= c.PlayfieldHeight:
		return fmt.Errorf("%w: ground_band_height %v outside [0, %v)", ErrInvalidConfig, c.GroundBandHeight, c.PlayfieldHeight)
	case c.ObstacleSpawnPeriod <= 0:
		return fmt.Errorf("%w: obstacle_spawn_period must be positive, got %v", ErrInvalidConfig, c.ObstacleSpawnPeriod)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player extent must be positive", ErrInvalidConfig)
	case c.Obstacle.Width <= 0 || c.Obstacle.Height <= 0:
		return fmt.Errorf("%w: obstacle extent must be positive", ErrInvalidConfig)
	case c.Physics.Gravity < 0 || c.Physics.DuckImpulse < 0:
		return fmt.Errorf("%w: gravity and duck_impulse must not be negative", ErrInvalidConfig)
	}
	return nil
}

// firstNonFinite returns the key of the first NaN or infinite field.
func (c RunnerConfig) firstNonFinite() (string, bool) {
	fields := []struct {
		name string
		v    float64
	}{
		{"playfield_width", c.PlayfieldWidth},
		{"playfield_height", c.PlayfieldHeight},
		{"ground_band_height", c.GroundBandHeight},
		{"base_obstacle_speed", c.BaseObstacleSpeed},
		{"obstacle_spawn_period", c.ObstacleSpawnPeriod},
		{"player.offset", c.Player.Offset},
		{"player.width", c.Player.Width},
		{"player.height", c.Player.Height},
		{"obstacle.width", c.Obstacle.Width},
		{"obstacle.height", c.Obstacle.Height},
		{"obstacle.spawn_margin", c.Obstacle.SpawnMargin},
		{"physics.jump_velocity", c.Physics.JumpVelocity},
		{"physics.duck_impulse", c.Physics.DuckImpulse},
		{"physics.gravity", c.Physics.Gravity},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return f.name, true
		}
	}
	return "", false
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI value to a preset. Empty means "use the config as is".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard)", s)
	}
}

// ApplyPreset scales obstacle speed and spawn period for a preset.
// Values stay constant for the whole session.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.BaseObstacleSpeed *= 0.75
		cfg.ObstacleSpawnPeriod *= 1.5
	case DifficultyHard:
		cfg.BaseObstacleSpeed *= 1.5
		cfg.ObstacleSpawnPeriod *= 0.75
	}
}
