package helix

import "github.com/vovakirdan/helixfall/internal/core"

// PlayRound lets the autopilot play until the current round ends. A round
// still going after maxTicks steps is abandoned and reported as a forfeit.
// maxTicks <= 0 means no limit.
func PlayRound(g *Game, pilot Autopilot, maxTicks int) core.RoundResult {
	for tick := 0; maxTicks <= 0 || tick < maxTicks; tick++ {
		if res := g.Step(pilot.Decide(g.Snapshot())); res.RoundOver != nil {
			return *res.RoundOver
		}
	}

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	if res := g.Step(in); res.RoundOver != nil {
		return *res.RoundOver
	}
	return core.RoundResult{Forfeit: true}
}
