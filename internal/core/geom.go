// Package core provides the shared types of helixfall: geometry helpers,
// the random source, input frames and the character screen. It has no
// terminal dependencies so game logic stays pure and testable.
package core

import "math"

// TwoPi is one full turn in radians.
const TwoPi = 2 * math.Pi

// NormalizeAngle wraps any finite angle into [0, 2π).
// Uses the closed form ((x mod 2π) + 2π) mod 2π so it is total over all inputs.
func NormalizeAngle(a float64) float64 {
	r := math.Mod(math.Mod(a, TwoPi)+TwoPi, TwoPi)
	// math.Mod can hand back 2π itself when a tiny negative remainder is shifted up
	if r >= TwoPi {
		r -= TwoPi
	}
	return r
}

// SignedAngle wraps an angle into (-π, π].
// Useful for "which way is shorter" decisions and for drawing around a centre.
func SignedAngle(a float64) float64 {
	r := NormalizeAngle(a)
	if r > math.Pi {
		r -= TwoPi
	}
	return r
}

// RoundTo rounds val to the given number of decimal places.
func RoundTo(val float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(val*p) / p
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
