package helix

import (
	"math"

	"github.com/vovakirdan/helixfall/internal/core"
)

// Autopilot steers the stack so the nearest gap sits under the ball.
// It is used by the headless simulator and by tests.
type Autopilot struct{}

// Decide returns the input for the next tick given the current snapshot.
func (Autopilot) Decide(s Snapshot) core.InputFrame {
	in := core.NewInputFrame()

	switch s.Phase {
	case PhaseStarting:
		in.Set(core.ActionStart)
		return in
	case PhaseGameOver:
		return in
	}

	if len(s.Active) == 0 {
		return in
	}

	rel := GapOffset(&s.Active[0], s.UserRotation)
	if math.Abs(rel) <= s.Sensitivity/2 {
		return in
	}
	if rel > 0 {
		in.Set(core.ActionRotateCCW)
	} else {
		in.Set(core.ActionRotateCW)
	}
	return in
}

// GapOffset returns the signed angle from the ball to the centre of the
// platform's gap, in (-π, π]. Turning counter-clockwise reduces it.
func GapOffset(p *Platform, userRotation float64) float64 {
	center := (p.Gap[0] + p.Gap[1]) / 2
	return core.SignedAngle(center + p.Rotation - userRotation)
}
