package config

import "math"

// DifficultyManager turns the current score into a bad-slice probability.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, MaxDifficulty),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Every > 0
}

// Initial returns the difficulty used for the opening stack of a round.
func (d *DifficultyManager) Initial() float64 {
	return d.initialLevel
}

// Level returns the difficulty for a platform spawned at the given score:
//
//	min(initial + step*floor(score/every), max)
//
// Non-decreasing in score and never above MaxDifficulty.
func (d *DifficultyManager) Level(score int) float64 {
	if !d.IsEnabled() || score <= 0 {
		return d.initialLevel
	}

	steps := math.Floor(float64(score) / float64(d.cfg.Progression.Every))
	level := d.initialLevel + d.cfg.Progression.Step*steps

	ceiling := d.cfg.Progression.Max
	if ceiling <= 0 || ceiling > MaxDifficulty {
		ceiling = MaxDifficulty
	}
	if ceiling < d.initialLevel {
		ceiling = d.initialLevel
	}
	return clampF(level, d.initialLevel, ceiling)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
