package config

import (
	"fmt"
	"math"
)

// ValidationError contains details about a configuration that cannot run.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks that the configuration describes a playable game.
// It returns the first problem found.
func (c HelixConfig) Validate() error {
	if err := c.validateSlices(); err != nil {
		return err
	}
	if err := c.validatePlatforms(); err != nil {
		return err
	}
	if err := c.validateFit(); err != nil {
		return err
	}

	switch {
	case c.Physics.Gravity >= 0:
		return ValidationError{Code: "GRAVITY", Message: "physics.gravity must be negative"}
	case c.Physics.BounceVelocity <= 0:
		return ValidationError{Code: "BOUNCE", Message: "physics.bounce_velocity must be positive"}
	case c.Physics.BallRadius <= 0:
		return ValidationError{Code: "BALL_RADIUS", Message: "physics.ball_radius must be positive"}
	case c.Physics.RotationSensitivity <= 0:
		return ValidationError{Code: "ROTATION", Message: "physics.rotation_sensitivity must be positive"}
	case c.Round.Lives < 1:
		return ValidationError{Code: "LIVES", Message: "round.lives must be at least 1"}
	case c.Round.Countdown < 0:
		return ValidationError{Code: "COUNTDOWN", Message: "round.countdown cannot be negative"}
	case c.Round.RetireDuration <= 0:
		return ValidationError{Code: "RETIRE", Message: "round.retire_duration must be positive"}
	case c.Powerups.Frequency < 0:
		return ValidationError{Code: "POWERUP", Message: "powerups.frequency cannot be negative"}
	}

	d := c.Difficulty
	if d.InitialLevel < 0 || d.InitialLevel > MaxDifficulty {
		return ValidationError{
			Code:    "DIFFICULTY",
			Message: fmt.Sprintf("difficulty.initial_level %.2f outside [0, %.1f]", d.InitialLevel, MaxDifficulty),
		}
	}
	if d.Progression.Max > MaxDifficulty {
		return ValidationError{
			Code:    "DIFFICULTY",
			Message: fmt.Sprintf("difficulty.progression.max %.2f above %.1f", d.Progression.Max, MaxDifficulty),
		}
	}
	if d.Progression.Step < 0 {
		return ValidationError{Code: "DIFFICULTY", Message: "difficulty.progression.step cannot be negative"}
	}
	return nil
}

// validateSlices checks the palette: widths must be positive and must stay
// distinct after rounding to one decimal, which is how slices are matched
// back to their palette entry.
func (c HelixConfig) validateSlices() error {
	if len(c.Slices.Widths) == 0 {
		return ValidationError{Code: "PALETTE_EMPTY", Message: "slices.widths must list at least one width"}
	}

	seen := make(map[float64]bool, len(c.Slices.Widths))
	for _, w := range c.Slices.Widths {
		if w <= 0 || w >= 2*math.Pi {
			return ValidationError{
				Code:    "PALETTE_WIDTH",
				Message: fmt.Sprintf("slice width %.3f must be in (0, 2π)", w),
			}
		}
		key := math.Round(w*10) / 10
		if seen[key] {
			return ValidationError{
				Code:    "PALETTE_DUPLICATE",
				Message: fmt.Sprintf("slice width %.3f collides with another width at one decimal", w),
			}
		}
		seen[key] = true
	}
	return nil
}

func (c HelixConfig) validatePlatforms() error {
	p := c.Platforms
	if p.InitialCount < 1 {
		return ValidationError{Code: "PLATFORM_COUNT", Message: "platforms.initial_count must be at least 1"}
	}
	if p.Spacing <= 0 || p.Thickness <= 0 {
		return ValidationError{Code: "PLATFORM_SIZE", Message: "platforms.spacing and thickness must be positive"}
	}
	if p.GapMinDeg <= 0 || p.GapMaxDeg >= 360 || p.GapMinDeg > p.GapMaxDeg {
		return ValidationError{
			Code:    "GAP_RANGE",
			Message: fmt.Sprintf("gap range [%.0f°, %.0f°] must satisfy 0 < min <= max < 360", p.GapMinDeg, p.GapMaxDeg),
		}
	}
	return nil
}

// validateFit checks that every slice width fits next to the widest gap.
// Otherwise a platform can come out with no slices at all.
func (c HelixConfig) validateFit() error {
	usable := 2*math.Pi - c.Platforms.GapMax()
	for _, w := range c.Slices.Widths {
		if w > usable {
			msg := fmt.Sprintf("slice width %.3f does not fit in the %.3f rad left by a %.0f° gap",
				w, usable, c.Platforms.GapMaxDeg)
			return ValidationError{Code: "PALETTE_TOO_WIDE", Message: msg}
		}
	}
	return nil
}
