// Package config provides YAML-based game configuration loading and
// difficulty presets for the breaker platform.
package config

// Config contains all tunable parameters for the block breaker.
type Config struct {
	Physics  Physics  `yaml:"physics"`
	Paddle   Paddle   `yaml:"paddle"`
	Ball     Ball     `yaml:"ball"`
	Blocks   Blocks   `yaml:"blocks"`
	Gameplay Gameplay `yaml:"gameplay"`
	PowerUps PowerUps `yaml:"powerups"`
}

// Physics defines motion parameters, in playfield units per tick.
type Physics struct {
	BaseBallSpeed float64 `yaml:"base_ball_speed"` // Launch speed at level 1
	SpeedPerLevel float64 `yaml:"speed_per_level"` // Added to launch speed per level
	PaddleSpeed   float64 `yaml:"paddle_speed"`    // Keyboard paddle movement per tick
	BounceKick    float64 `yaml:"bounce_kick"`     // Horizontal exit velocity scale on paddle bounce
}

// Paddle defines paddle dimensions.
type Paddle struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Ball defines ball parameters.
type Ball struct {
	Radius float64 `yaml:"radius"`
}

// Blocks defines the level grid layout.
type Blocks struct {
	Rows      int     `yaml:"rows"`
	Cols      int     `yaml:"cols"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Padding   float64 `yaml:"padding"`
	TopOffset float64 `yaml:"top_offset"`
	MaxHealth int     `yaml:"max_health"` // Health cap for high levels
}

// Gameplay defines session rules.
type Gameplay struct {
	Lives          int `yaml:"lives"`
	PointsPerBlock int `yaml:"points_per_block"` // Multiplied by the current level
}

// PowerUps defines spawn probabilities and effect parameters.
// Chances are evaluated as ordered cumulative thresholds: the first kind
// whose cumulative probability exceeds the random draw spawns; leftover
// probability mass spawns nothing.
type PowerUps struct {
	ChanceSpeed float64 `yaml:"chance_speed"`
	ChanceWide  float64 `yaml:"chance_wide"`
	ChanceMulti float64 `yaml:"chance_multi"`

	// Durations are wall-clock milliseconds, converted to ticks at the
	// configured tick rate so tests never need real delays.
	DurationSpeedMs int `yaml:"duration_speed_ms"`
	DurationWideMs  int `yaml:"duration_wide_ms"`

	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	WidthMultiplier float64 `yaml:"width_multiplier"`
	FallSpeed       float64 `yaml:"fall_speed"`
	MultiCount      int     `yaml:"multi_count"`
}

// Preset represents a named difficulty level.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// ApplyPreset adjusts the config for a difficulty preset.
// Unknown presets leave the config untouched.
func ApplyPreset(cfg *Config, preset Preset) {
	switch preset {
	case PresetEasy:
		cfg.Gameplay.Lives = 5
		cfg.Physics.BaseBallSpeed *= 0.85
	case PresetNormal:
		// Defaults are the normal preset.
	case PresetHard:
		cfg.Gameplay.Lives = 2
		cfg.Physics.BaseBallSpeed *= 1.2
	}
}
