package config

import (
	_ "embed"
)

//go:embed defaults/helix.yaml
var defaultHelixYAML []byte

// DefaultHelixConfig returns the built-in helix configuration.
// It mirrors defaults/helix.yaml and is the fallback if the embed is unreadable.
func DefaultHelixConfig() HelixConfig {
	return HelixConfig{
		Physics: HelixPhysics{
			Gravity:             -0.01,
			BounceVelocity:      0.3,
			BallRadius:          0.5,
			ContactEpsilon:      0.001,
			RotationSensitivity: 0.05,
		},
		Platforms: HelixPlatforms{
			Radius:       7,
			Thickness:    1.5,
			InitialCount: 5,
			Spacing:      9,
			GapMinDeg:    36,
			GapMaxDeg:    240,
		},
		Slices: HelixSlices{
			Widths: []float64{0.5, 0.8, 1.0, 1.3, 1.5},
		},
		Powerups: HelixPowerups{
			Frequency: 5,
			Tolerance: 0.12,
		},
		Round: HelixRound{
			Lives:           1,
			StartY:          11,
			Countdown:       3,
			LifeLossWindow:  0.3,
			RetireDuration:  4,
			RetireSpeed:     10,
			RetireMaxOffset: 20,
			SquishDuration:  0.2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.2,
			Progression: ProgressionConfig{
				Every: 4,
				Step:  0.05,
				Max:   MaxDifficulty,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultHelixYAML
}
