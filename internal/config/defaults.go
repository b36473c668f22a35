package config

import (
	_ "embed"
)

//go:embed defaults/breaker.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
// Kept in sync with defaults/breaker.yaml as a fallback if the embed fails
// to parse.
func Default() Config {
	return Config{
		Physics: Physics{
			BaseBallSpeed: 5.0,
			SpeedPerLevel: 0.5,
			PaddleSpeed:   10.0,
			BounceKick:    10.0,
		},
		Paddle: Paddle{
			Width:  100,
			Height: 12,
		},
		Ball: Ball{
			Radius: 8,
		},
		Blocks: Blocks{
			Rows:      5,
			Cols:      10,
			Width:     70,
			Height:    20,
			Padding:   8,
			TopOffset: 60,
			MaxHealth: 3,
		},
		Gameplay: Gameplay{
			Lives:          3,
			PointsPerBlock: 100,
		},
		PowerUps: PowerUps{
			ChanceSpeed:     0.10,
			ChanceWide:      0.10,
			ChanceMulti:     0.08,
			DurationSpeedMs: 5000,
			DurationWideMs:  8000,
			SpeedMultiplier: 1.5,
			WidthMultiplier: 1.5,
			FallSpeed:       3.0,
			MultiCount:      2,
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultYAML
}
