package core

import (
	"math"
	"testing"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"zero", 0, 0},
		{"inside range", 1.5, 1.5},
		{"full turn wraps to zero", TwoPi, 0},
		{"slightly negative", -0.25, TwoPi - 0.25},
		{"several turns positive", 3*TwoPi + 1, 1},
		{"several turns negative", -5*TwoPi - 1, TwoPi - 1},
		{"large offset", 1000.5, math.Mod(1000.5, TwoPi)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := NormalizeAngle(tc.in)
			if math.Abs(result-tc.expected) > 1e-9 {
				t.Errorf("NormalizeAngle(%f) = %f, expected %f", tc.in, result, tc.expected)
			}
			if result < 0 || result >= TwoPi {
				t.Errorf("NormalizeAngle(%f) = %f, outside [0, 2π)", tc.in, result)
			}
		})
	}
}

func TestNormalizeAngleTinyNegative(t *testing.T) {
	// -1e-18 + 2π rounds to 2π in float64; the result must still be < 2π
	result := NormalizeAngle(-1e-18)
	if result < 0 || result >= TwoPi {
		t.Errorf("NormalizeAngle(-1e-18) = %v, outside [0, 2π)", result)
	}
}

func TestSignedAngle(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0, 0},
		{1, 1},
		{math.Pi, math.Pi},
		{math.Pi + 0.5, -math.Pi + 0.5},
		{-1, -1},
		{TwoPi - 0.1, -0.1},
	}

	for _, tc := range tests {
		result := SignedAngle(tc.in)
		if math.Abs(result-tc.expected) > 1e-9 {
			t.Errorf("SignedAngle(%f) = %f, expected %f", tc.in, result, tc.expected)
		}
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		val      float64
		places   int
		expected float64
	}{
		{0.5000000001, 1, 0.5},
		{1.29999999, 1, 1.3},
		{0.75, 1, 0.8},
		{2.346, 2, 2.35},
	}

	for _, tc := range tests {
		result := RoundTo(tc.val, tc.places)
		if math.Abs(result-tc.expected) > 1e-12 {
			t.Errorf("RoundTo(%f, %d) = %f, expected %f", tc.val, tc.places, result, tc.expected)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{0.3, 0.0, 0.5, 0.3},
		{-0.1, 0.0, 0.5, 0.0},
		{0.9, 0.0, 0.5, 0.5},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMaxAbs(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return the smaller value")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return the larger value")
	}
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs should return the magnitude")
	}
}
