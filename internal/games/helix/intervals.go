package helix

import "github.com/vovakirdan/helixfall/internal/core"

// Interval is a half-open angular range [Start, End).
type Interval struct {
	Start float64
	End   float64
}

// Width returns End - Start.
func (iv Interval) Width() float64 {
	return iv.End - iv.Start
}

// SplitRange lays contiguous intervals over [start, end), each one a
// palette width drawn uniformly at random. It stops at the first draw that
// would overrun end; whatever is left over belongs to the caller.
//
// An empty palette, or a range too short for the first draw, yields nil.
func SplitRange(start, end float64, palette []SliceSpec, rng core.Source) []Interval {
	if len(palette) == 0 {
		return nil
	}

	var intervals []Interval
	pos := start
	for {
		width := palette[core.Pick(rng, len(palette))].Width
		if width <= 0 || pos+width > end {
			break
		}
		intervals = append(intervals, Interval{Start: pos, End: pos + width})
		pos += width
	}
	return intervals
}
