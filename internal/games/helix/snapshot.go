package helix

import (
	"math"

	"github.com/vovakirdan/helixfall/internal/core"
)

// Snapshot is a read-only copy of the round for renderers and bots.
// Mutating it has no effect on the game.
type Snapshot struct {
	Score        int
	HighScore    int
	Lives        int
	Phase        Phase
	Countdown    float64
	Paused       bool
	Time         float64
	Ball         Ball
	SquishX      float64
	SquishY      float64
	UserRotation float64
	Sensitivity  float64
	Thickness    float64
	Active       []Platform // Nearest first
	Retired      []Platform
	Offsets      []float64 // Upward drift of each Retired entry

	UnmatchedSlices int
}

// Snapshot copies the current round state.
func (g *Game) Snapshot() Snapshot {
	sx, sy := g.squishScale()

	s := Snapshot{
		Score:           g.score,
		HighScore:       g.highScore,
		Lives:           g.lives,
		Phase:           g.phase,
		Countdown:       g.countdown,
		Paused:          g.paused,
		Time:            g.now,
		Ball:            g.ball,
		SquishX:         sx,
		SquishY:         sy,
		UserRotation:    g.userRotation,
		Sensitivity:     g.cfg.Physics.RotationSensitivity,
		Thickness:       g.cfg.Platforms.Thickness,
		Active:          make([]Platform, len(g.active)),
		Retired:         make([]Platform, len(g.retired)),
		Offsets:         make([]float64, len(g.retired)),
		UnmatchedSlices: g.unmatched,
	}

	for i, p := range g.active {
		s.Active[i] = p.clone()
	}
	for i, p := range g.retired {
		s.Retired[i] = p.clone()
		s.Offsets[i] = RetiredOffset(p, g.now, g.cfg.Round)
	}
	return s
}

// CountdownSeconds returns the countdown rounded up to whole seconds.
func (s Snapshot) CountdownSeconds() int {
	return int(math.Ceil(s.Countdown))
}

// PowerupSpin returns the cosmetic spin angle of a powerup at the snapshot time.
func (s Snapshot) PowerupSpin(pu *Powerup) float64 {
	return core.NormalizeAngle(pu.Phase + math.Mod(s.Time, core.TwoPi))
}

// PowerupPulse returns the cosmetic size multiplier of powerups, in [0.6, 1.0].
func (s Snapshot) PowerupPulse() float64 {
	return 0.2*math.Sin(core.TwoPi*s.Time) + 0.8
}
