package helix

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/helixfall/internal/config"
	"github.com/vovakirdan/helixfall/internal/core"
	"github.com/vovakirdan/helixfall/internal/registry"
)

const testDT = 1.0 / 60.0

func newTestGame(seed int64) *Game {
	g := New(WithConfig(config.DefaultHelixConfig()), WithSource(core.NewSource(seed)))
	g.Reset(core.DefaultConfig())
	return g
}

// runningGame returns a game already past the countdown.
func runningGame() *Game {
	g := newTestGame(42)
	g.phase = PhaseRunning
	g.now = 5
	return g
}

// solidPlatform covers the ball with one slice; its gap never reaches it.
func solidPlatform(good bool) Platform {
	return Platform{
		Slices: []Slice{{Good: good, Start: 0, End: 4}},
		Gap:    [2]float64{4, core.TwoPi},
	}
}

// openPlatform has its gap centred under the ball.
func openPlatform() Platform {
	p := solidPlatform(true)
	p.Rotation = 1.0
	return p
}

// placeOnTop swaps in p as the nearest platform and drops the ball just
// above it so the next step makes contact.
func placeOnTop(g *Game, p Platform) {
	p.Y = g.active[0].Y
	g.active[0] = &p
	top := p.Top(g.cfg.Platforms.Thickness)
	g.ball.Y = top + g.ball.Radius + 0.005
	g.ball.Velocity = 0
}

func TestGameRegistered(t *testing.T) {
	if _, ok := registry.Lookup(GameID); !ok {
		t.Fatalf("game %q not registered", GameID)
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(1)
	cfg := g.Config()

	if g.phase != PhaseStarting {
		t.Errorf("expected starting phase, got %s", g.phase)
	}
	if g.lives != cfg.Round.Lives {
		t.Errorf("expected %d lives, got %d", cfg.Round.Lives, g.lives)
	}
	if g.ball.Y != cfg.Round.StartY {
		t.Errorf("expected ball at %v, got %v", cfg.Round.StartY, g.ball.Y)
	}
	if len(g.active) != cfg.Platforms.InitialCount {
		t.Fatalf("expected %d platforms, got %d", cfg.Platforms.InitialCount, len(g.active))
	}
	for i, p := range g.active {
		want := -float64(i) * cfg.Platforms.Spacing
		if p.Y != want {
			t.Errorf("platform %d at %v, want %v", i, p.Y, want)
		}
	}
}

func TestGamePhases(t *testing.T) {
	g := newTestGame(2)
	startY := g.ball.Y

	g.Advance(testDT, Controls{})
	if g.phase != PhaseStarting || g.ball.Y != startY {
		t.Fatal("game should idle in starting phase without physics")
	}

	g.Advance(testDT, Controls{Start: true})
	if g.phase != PhaseCountdown {
		t.Fatalf("expected countdown, got %s", g.phase)
	}
	if g.countdown != g.cfg.Round.Countdown {
		t.Errorf("countdown = %v, want %v", g.countdown, g.cfg.Round.Countdown)
	}

	// Start is ignored outside the starting phase
	g.Advance(1.0, Controls{Start: true})
	if g.phase != PhaseCountdown || math.Abs(g.countdown-2.0) > 1e-9 {
		t.Fatalf("expected countdown at 2s, got %s %v", g.phase, g.countdown)
	}
	if g.ball.Y != startY {
		t.Error("ball moved during countdown")
	}

	g.Advance(2.0, Controls{})
	if g.phase != PhaseRunning {
		t.Fatalf("expected running, got %s", g.phase)
	}
	if g.ball.Y >= startY {
		t.Error("gravity should apply on the first running step")
	}
}

func TestGameRotation(t *testing.T) {
	g := newTestGame(3)
	sens := g.cfg.Physics.RotationSensitivity

	g.Advance(testDT, Controls{RotateCW: true})
	if math.Abs(g.userRotation-(core.TwoPi-sens)) > 1e-12 {
		t.Errorf("CW from 0 = %v, want %v", g.userRotation, core.TwoPi-sens)
	}

	g.Advance(testDT, Controls{RotateCCW: true})
	g.Advance(testDT, Controls{RotateCCW: true})
	if math.Abs(g.userRotation-sens) > 1e-9 {
		t.Errorf("after CW+2*CCW = %v, want %v", g.userRotation, sens)
	}

	before := g.userRotation
	g.Advance(testDT, Controls{RotateCW: true, RotateCCW: true})
	if math.Abs(g.userRotation-before) > 1e-9 {
		t.Errorf("both keys held should cancel: %v -> %v", before, g.userRotation)
	}
}

func TestGameToggleColor(t *testing.T) {
	g := newTestGame(4)

	g.Advance(testDT, Controls{ToggleColor: true})
	if g.ball.Color != 1 {
		t.Fatalf("expected color 1, got %d", g.ball.Color)
	}

	g.phase = PhaseRunning
	g.Advance(testDT, Controls{ToggleColor: true})
	if g.ball.Color != 0 {
		t.Errorf("expected color 0, got %d", g.ball.Color)
	}
}

func TestGameFallThrough(t *testing.T) {
	g := runningGame()
	placeOnTop(g, openPlatform())
	second := g.active[1]
	lowest := g.active[len(g.active)-1].Y

	res := g.Advance(testDT, Controls{})

	if res.RoundOver != nil {
		t.Fatal("falling through should not end the round")
	}
	if g.score != 1 {
		t.Errorf("expected score 1, got %d", g.score)
	}
	if len(g.active) != g.cfg.Platforms.InitialCount {
		t.Errorf("expected %d active platforms, got %d", g.cfg.Platforms.InitialCount, len(g.active))
	}
	if g.active[0] != second {
		t.Error("next platform should become nearest")
	}
	if got := g.active[len(g.active)-1].Y; got != lowest-g.cfg.Platforms.Spacing {
		t.Errorf("new platform at %v, want %v", got, lowest-g.cfg.Platforms.Spacing)
	}
	if len(g.retired) != 1 {
		t.Fatalf("expected 1 retired platform, got %d", len(g.retired))
	}
	if !g.retired[0].Retired || g.retired[0].RetiredAt != g.now {
		t.Error("retired platform should be stamped with the current time")
	}

	for i := 1; i < len(g.active); i++ {
		if g.active[i].Y >= g.active[i-1].Y {
			t.Fatalf("active platforms not sorted by descending height at %d", i)
		}
	}
}

func TestGameGoodBounce(t *testing.T) {
	g := runningGame()
	placeOnTop(g, solidPlatform(true))
	top := g.active[0].Top(g.cfg.Platforms.Thickness)

	g.Advance(testDT, Controls{})

	if g.ball.Y != top+g.ball.Radius {
		t.Errorf("ball at %v, want %v", g.ball.Y, top+g.ball.Radius)
	}
	if g.ball.Velocity != g.cfg.Physics.BounceVelocity {
		t.Errorf("velocity = %v, want %v", g.ball.Velocity, g.cfg.Physics.BounceVelocity)
	}
	if g.lives != 1 || g.score != 0 {
		t.Errorf("bounce changed lives/score: %d/%d", g.lives, g.score)
	}
	if g.squishStart != g.now {
		t.Error("bounce should start the squish animation")
	}
}

func TestGameBadSliceWithSpareLife(t *testing.T) {
	g := runningGame()
	g.lives = 2
	placeOnTop(g, solidPlatform(false))

	res := g.Advance(testDT, Controls{})
	if res.RoundOver != nil {
		t.Fatal("round should continue with a life left")
	}
	if g.lives != 1 {
		t.Errorf("expected 1 life, got %d", g.lives)
	}
	if g.ball.Velocity != g.cfg.Physics.BounceVelocity {
		t.Error("ball should still bounce after losing a life")
	}

	// A second hit inside the window is ignored
	placeOnTop(g, solidPlatform(false))
	g.Advance(testDT, Controls{})
	if g.lives != 1 {
		t.Errorf("debounced hit cost a life: %d", g.lives)
	}
}

func TestGameLifeLossDebounce(t *testing.T) {
	g := runningGame()
	g.score = 7
	g.lastLifeLost = 9.8
	g.now = 10.0 - testDT
	placeOnTop(g, solidPlatform(false))

	res := g.Advance(testDT, Controls{})
	if res.RoundOver != nil {
		t.Fatal("loss at t=10.0 should be suppressed")
	}
	if g.lives != 1 {
		t.Fatalf("expected 1 life, got %d", g.lives)
	}

	g.now = 10.5 - testDT
	placeOnTop(g, solidPlatform(false))
	res = g.Advance(testDT, Controls{})

	if res.RoundOver == nil {
		t.Fatal("expected the round to end at t=10.5")
	}
	if res.RoundOver.Score != 7 || res.RoundOver.Forfeit {
		t.Errorf("unexpected round result: %+v", *res.RoundOver)
	}
	if g.score != 0 {
		t.Errorf("score should reset, got %d", g.score)
	}
	if g.highScore != 7 {
		t.Errorf("high score = %d, want 7", g.highScore)
	}
	if g.phase != PhaseStarting {
		t.Errorf("expected starting phase after reset, got %s", g.phase)
	}
	if g.lives != g.cfg.Round.Lives {
		t.Errorf("lives = %d, want %d", g.lives, g.cfg.Round.Lives)
	}
	if res.State.Phase != PhaseStarting.String() {
		t.Errorf("step result phase = %q", res.State.Phase)
	}
}

func TestGamePowerupCollected(t *testing.T) {
	g := runningGame()
	p := solidPlatform(true)
	p.Powerup = &Powerup{Angle: 0}
	placeOnTop(g, p)
	pu := g.active[0].Powerup

	g.Advance(testDT, Controls{})

	if g.lives != 2 {
		t.Errorf("expected 2 lives, got %d", g.lives)
	}
	if !pu.Collected {
		t.Error("powerup should be marked collected")
	}
	if g.active[0].Powerup != nil {
		t.Error("collected powerup should be removed from the platform")
	}
	if g.livesGained != 1 {
		t.Errorf("livesGained = %d, want 1", g.livesGained)
	}
}

func TestSpawnDifficulty(t *testing.T) {
	g := newTestGame(5)

	g.score = 8
	if d := g.spawnDifficulty(); math.Abs(d-0.3) > 1e-9 {
		t.Errorf("difficulty at score 8 = %v, want 0.3", d)
	}

	prev := 0.0
	for score := 0; score <= 100; score++ {
		g.score = score
		d := g.spawnDifficulty()
		if d < prev || d > config.MaxDifficulty {
			t.Fatalf("difficulty %v at score %d breaks monotonic cap", d, score)
		}
		prev = d
	}
}

func TestAddPlatformPowerupCadence(t *testing.T) {
	g := newTestGame(6)
	freq := g.cfg.Powerups.Frequency

	for score := 1; score <= 3*freq; score++ {
		g.score = score
		g.addPlatform()
		p := g.active[len(g.active)-1]
		if want := score%freq == 0; (p.Powerup != nil) != want {
			t.Errorf("score %d: powerup attached = %v, want %v", score, p.Powerup != nil, want)
		}
		if p.Powerup != nil && p.Powerup.Y != p.Y {
			t.Errorf("score %d: powerup y %v != platform y %v", score, p.Powerup.Y, p.Y)
		}
	}
}

func TestRetiredLifecycle(t *testing.T) {
	g := runningGame()
	placeOnTop(g, openPlatform())
	g.Advance(testDT, Controls{})

	retired := g.retired[0]
	at := retired.RetiredAt
	round := g.cfg.Round

	if off := RetiredOffset(retired, at+1, round); math.Abs(off-10) > 1e-9 {
		t.Errorf("offset after 1s = %v, want 10", off)
	}
	if off := RetiredOffset(retired, at+3.9, round); off != round.RetireMaxOffset {
		t.Errorf("offset after 3.9s = %v, want %v", off, round.RetireMaxOffset)
	}
	if off := RetiredOffset(g.active[0], at+1, round); off != 0 {
		t.Errorf("active platform offset = %v, want 0", off)
	}
	if len(g.retired) != 1 {
		t.Fatal("offset queries must not drop retired platforms")
	}

	g.phase = PhaseStarting
	g.Advance(round.RetireDuration-0.5, Controls{})
	if len(g.retired) != 1 {
		t.Fatal("platform collected before its animation finished")
	}
	g.Advance(1.0, Controls{})
	if len(g.retired) != 0 {
		t.Errorf("expected retired queue to be empty, got %d", len(g.retired))
	}
}

func TestUnmatchedSliceDefaultsGood(t *testing.T) {
	g := runningGame()
	placeOnTop(g, Platform{Gap: [2]float64{0, core.TwoPi}})

	g.Advance(testDT, Controls{})

	if g.unmatched != 1 {
		t.Errorf("unmatched = %d, want 1", g.unmatched)
	}
	if g.ball.Velocity != g.cfg.Physics.BounceVelocity {
		t.Error("unmatched slice should bounce like a good one")
	}
	if g.Snapshot().UnmatchedSlices != 1 {
		t.Error("snapshot should report unmatched slices")
	}
}

func TestLivesNeverNegative(t *testing.T) {
	g := newTestGame(7)
	rng := rand.New(rand.NewSource(8))

	for tick := 0; tick < 20000; tick++ {
		in := core.NewInputFrame()
		if rng.Intn(3) == 0 {
			in.Set(core.ActionRotateCW)
		}
		if rng.Intn(3) == 0 {
			in.Set(core.ActionRotateCCW)
		}
		if rng.Intn(50) == 0 {
			in.Set(core.ActionStart)
		}
		if rng.Intn(200) == 0 {
			in.Set(core.ActionToggleColor)
		}

		res := g.Step(in)
		if res.State.Lives < 0 {
			t.Fatalf("tick %d: negative lives", tick)
		}
		if res.State.Phase == PhaseRunning.String() && res.State.Lives == 0 {
			t.Fatalf("tick %d: running with zero lives", tick)
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() (Snapshot, int) {
		g := newTestGame(12345)
		var pilot Autopilot
		rounds := 0
		for i := 0; i < 3000; i++ {
			if res := g.Step(pilot.Decide(g.Snapshot())); res.RoundOver != nil {
				rounds++
			}
		}
		return g.Snapshot(), rounds
	}

	s1, r1 := run()
	s2, r2 := run()

	if s1.Score != s2.Score || s1.HighScore != s2.HighScore || r1 != r2 {
		t.Errorf("runs diverged: %d/%d/%d vs %d/%d/%d", s1.Score, s1.HighScore, r1, s2.Score, s2.HighScore, r2)
	}
	if s1.Ball != s2.Ball || s1.UserRotation != s2.UserRotation {
		t.Error("runs diverged in ball or rotation state")
	}
}

func TestGamePause(t *testing.T) {
	g := runningGame()
	y := g.ball.Y

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("expected paused state")
	}

	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.ball.Y != y {
		t.Error("ball moved while paused")
	}

	g.Step(pause)
	if g.State().Paused {
		t.Fatal("expected unpaused state")
	}
	g.Step(core.NewInputFrame())
	if g.ball.Y == y {
		t.Error("ball should fall after unpausing")
	}
}

func TestGameRestartForfeits(t *testing.T) {
	g := runningGame()
	g.score = 3

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	res := g.Step(restart)

	if res.RoundOver == nil || !res.RoundOver.Forfeit {
		t.Fatal("restart while running should forfeit the round")
	}
	if g.phase != PhaseStarting || g.highScore != 3 {
		t.Errorf("unexpected state after restart: %s high=%d", g.phase, g.highScore)
	}

	// Nothing to forfeit before a round starts
	if res := g.Step(restart); res.RoundOver != nil {
		t.Error("restart in starting phase should not report a round")
	}
}

func TestAutopilotScores(t *testing.T) {
	g := newTestGame(99)
	var pilot Autopilot

	best := 0
	for i := 0; i < 600; i++ {
		res := g.Step(pilot.Decide(g.Snapshot()))
		if res.State.Score > best {
			best = res.State.Score
		}
		if res.RoundOver != nil && res.RoundOver.Score > best {
			best = res.RoundOver.Score
		}
	}
	if best == 0 {
		t.Error("autopilot never dropped through a gap")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	g := newTestGame(10)
	g.active[0].Powerup = &Powerup{Angle: 1}

	s := g.Snapshot()
	s.Active[0].Slices[0].Good = !s.Active[0].Slices[0].Good
	s.Active[0].Powerup.Collected = true

	if g.active[0].Slices[0].Good == s.Active[0].Slices[0].Good {
		t.Error("snapshot slices alias game state")
	}
	if g.active[0].Powerup.Collected {
		t.Error("snapshot powerup aliases game state")
	}
}

func TestSquishScale(t *testing.T) {
	g := runningGame()

	if x, y := g.squishScale(); x != 1 || y != 1 {
		t.Errorf("resting scale = %v,%v, want 1,1", x, y)
	}

	g.squishStart = g.now - 0.1
	x, y := g.squishScale()
	if x <= 1 || y >= 1 {
		t.Errorf("mid-squish scale = %v,%v, want x>1 y<1", x, y)
	}
	if math.Abs(x+y-2) > 1e-12 {
		t.Errorf("squish should preserve x+y=2, got %v", x+y)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(11)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD missing score: %q", screen.Row(0))
	}
	if !strings.Contains(out, "Press SPACE to start") {
		t.Error("start prompt not rendered")
	}
	if r := screen.Get(40, 8); r != BallChar {
		t.Errorf("expected ball at centre, got %q", r)
	}
	if !strings.ContainsAny(out, "=#") {
		t.Error("no platform slices rendered")
	}
}
