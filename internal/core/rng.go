package core

import (
	"math/rand"
	"time"
)

// Source yields uniformly distributed floats in [0, 1).
// Every random decision in a game goes through one Source so tests can
// substitute a scripted sequence. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a math/rand backed Source.
// A zero seed means "use the current time", matching RuntimeConfig.Seed.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// SequenceSource replays a fixed list of values, cycling when exhausted.
// Intended for tests that need to pin every random draw.
type SequenceSource struct {
	Values []float64
	pos    int
}

// NewSequenceSource creates a source that returns values in order.
func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{Values: values}
}

// Float64 returns the next scripted value (0 if the list is empty).
func (s *SequenceSource) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	return v
}

// Draws returns how many values have been consumed so far.
func (s *SequenceSource) Draws() int {
	return s.pos
}

// Uniform maps a draw from src into [min, max).
func Uniform(src Source, min, max float64) float64 {
	return min + src.Float64()*(max-min)
}

// Pick returns a uniformly chosen index in [0, n).
// Returns 0 when n <= 0.
func Pick(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(src.Float64() * float64(n))
	if i >= n { // guards against a source that returns exactly 1.0
		i = n - 1
	}
	return i
}
