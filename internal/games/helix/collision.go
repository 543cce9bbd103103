package helix

import "github.com/vovakirdan/helixfall/internal/core"

// clearance is subtracted from the ball radius to get its angular half-width.
const clearance = 0.4

// Ball is the falling ball. Color selects the slice polarity (0 or 1).
type Ball struct {
	Y        float64
	Velocity float64
	Radius   float64
	Color    int
}

// Bottom returns the height of the lowest point of the ball.
func (b Ball) Bottom() float64 {
	return b.Y - b.Radius
}

// adjust maps a platform-local angle to the ball's frame.
func adjust(angle float64, p *Platform, userRotation float64) float64 {
	return core.NormalizeAngle(angle + p.Rotation - userRotation)
}

// HasCollided reports whether the ball strikes the platform body rather than
// dropping through its gap.
//
// A gap spanning the full turn (a platform with no slices) never collides.
// Otherwise a gap
// that does not straddle angle zero after adjustment always collides, and
// a straddling gap lets the ball through only when its footprint clears
// both edges.
func HasCollided(ball Ball, p *Platform, userRotation float64) bool {
	if p.Gap[1]-p.Gap[0] >= core.TwoPi {
		return false
	}

	g0 := adjust(p.Gap[0], p, userRotation)
	g1 := adjust(p.Gap[1], p, userRotation)

	if g0 < g1 {
		return true
	}

	delta := ball.Radius - clearance
	return !(g0 < core.TwoPi-delta && g1 > delta)
}

// ResolvesGoodSlice reports whether the slice under the ball is safe for the
// ball's current color. matched is false when no slice sits under the ball,
// in which case good defaults to true.
func ResolvesGoodSlice(ball Ball, p *Platform, userRotation float64) (good, matched bool) {
	delta := ball.Radius - clearance
	for _, s := range p.Slices {
		start := adjust(s.Start, p, userRotation)
		end := adjust(s.End, p, userRotation)

		if start > end || start < delta || end > core.TwoPi-delta {
			if ball.Color == 0 {
				return s.Good, true
			}
			return !s.Good, true
		}
	}
	return true, false
}

// PowerupInReach reports whether the powerup sits within tolerance of the
// ball for the given user rotation.
func PowerupInReach(pu *Powerup, userRotation, tolerance float64) bool {
	if pu == nil || pu.Collected {
		return false
	}
	angle := core.NormalizeAngle(-(pu.Angle + userRotation))
	return angle < tolerance || core.TwoPi-angle < tolerance
}

// powerupYaw returns the powerup's angular offset from the ball in (-π, π].
func powerupYaw(pu *Powerup, userRotation float64) float64 {
	return core.SignedAngle(pu.Angle + userRotation)
}
