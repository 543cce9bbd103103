// Package config provides YAML/TOML game configuration loading and
// difficulty management for helixfall.
package config

import "math"

// MaxDifficulty is the hard ceiling for the bad-slice probability.
// Above it the stack stops being reliably winnable.
const MaxDifficulty = 0.5

// HelixConfig contains all configuration for the helix game.
type HelixConfig struct {
	Physics    HelixPhysics     `yaml:"physics" toml:"physics"`
	Platforms  HelixPlatforms   `yaml:"platforms" toml:"platforms"`
	Slices     HelixSlices      `yaml:"slices" toml:"slices"`
	Powerups   HelixPowerups    `yaml:"powerups" toml:"powerups"`
	Round      HelixRound       `yaml:"round" toml:"round"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// HelixPhysics defines ball physics. Velocities are world units per tick.
type HelixPhysics struct {
	Gravity             float64 `yaml:"gravity" toml:"gravity"`                           // Added to velocity every tick (negative = down)
	BounceVelocity      float64 `yaml:"bounce_velocity" toml:"bounce_velocity"`           // Upward velocity after a bounce
	BallRadius          float64 `yaml:"ball_radius" toml:"ball_radius"`                   // Ball radius in world units
	ContactEpsilon      float64 `yaml:"contact_epsilon" toml:"contact_epsilon"`           // Tolerance for ball/platform contact
	RotationSensitivity float64 `yaml:"rotation_sensitivity" toml:"rotation_sensitivity"` // Radians turned per tick per held key
}

// HelixPlatforms defines platform geometry and stack layout.
type HelixPlatforms struct {
	Radius       float64 `yaml:"radius" toml:"radius"`
	Thickness    float64 `yaml:"thickness" toml:"thickness"`
	InitialCount int     `yaml:"initial_count" toml:"initial_count"` // Platforms generated at round start
	Spacing      float64 `yaml:"spacing" toml:"spacing"`             // Vertical distance between platforms
	GapMinDeg    float64 `yaml:"gap_min_deg" toml:"gap_min_deg"`
	GapMaxDeg    float64 `yaml:"gap_max_deg" toml:"gap_max_deg"`
}

// GapMin returns the minimum gap size in radians.
func (p HelixPlatforms) GapMin() float64 {
	return p.GapMinDeg * math.Pi / 180
}

// GapMax returns the maximum gap size in radians.
func (p HelixPlatforms) GapMax() float64 {
	return p.GapMaxDeg * math.Pi / 180
}

// HelixSlices defines the palette of slice widths (radians).
type HelixSlices struct {
	Widths []float64 `yaml:"widths" toml:"widths"`
}

// HelixPowerups defines extra-life pickup placement.
type HelixPowerups struct {
	Frequency int     `yaml:"frequency" toml:"frequency"` // Attach to a new platform when score % frequency == 0 (0 disables)
	Tolerance float64 `yaml:"tolerance" toml:"tolerance"` // Angular reach in radians
}

// HelixRound defines round flow and timing. Durations are simulated seconds.
type HelixRound struct {
	Lives           int     `yaml:"lives" toml:"lives"`
	StartY          float64 `yaml:"start_y" toml:"start_y"`
	Countdown       float64 `yaml:"countdown" toml:"countdown"`
	LifeLossWindow  float64 `yaml:"life_loss_window" toml:"life_loss_window"` // Debounce between two life losses
	RetireDuration  float64 `yaml:"retire_duration" toml:"retire_duration"`   // How long a passed platform lingers
	RetireSpeed     float64 `yaml:"retire_speed" toml:"retire_speed"`         // Upward drift of a passed platform, units/s
	RetireMaxOffset float64 `yaml:"retire_max_offset" toml:"retire_max_offset"`
	SquishDuration  float64 `yaml:"squish_duration" toml:"squish_duration"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // Bad-slice probability at score 0
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
}

// ProgressionConfig defines how difficulty increases with score.
type ProgressionConfig struct {
	Every int     `yaml:"every" toml:"every"` // Points needed per step
	Step  float64 `yaml:"step" toml:"step"`   // Increase per step
	Max   float64 `yaml:"max" toml:"max"`     // Cap, never above MaxDifficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.1
	case DifficultyNormal:
		return 0.2
	case DifficultyHard:
		return 0.35
	default:
		return 0.2
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Fixed keeps the configured initial level and disables progression.
func ApplyPreset(cfg *HelixConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Round.Lives = 3
	case DifficultyHard:
		cfg.Round.Lives = 1
		cfg.Powerups.Frequency = 10
	}
}
