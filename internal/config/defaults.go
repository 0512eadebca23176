package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		PlayfieldWidth:      600,
		PlayfieldHeight:     200,
		GroundBandHeight:    15,
		BaseObstacleSpeed:   -200,
		ObstacleSpawnPeriod: 3,
		Player: PlayerConfig{
			Offset: 40,
			Width:  40,
			Height: 60,
		},
		Obstacle: ObstacleConfig{
			Width:       20,
			Height:      45,
			SpawnMargin: 100,
		},
		Physics: PhysicsConfig{
			JumpVelocity: 300,
			DuckImpulse:  600,
			Gravity:      500,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
