// Package helix implements a helix-jump style endless runner.
// A ball falls through a stack of rotating ring platforms; the player turns
// the stack so the ball drops through gaps and bounces on safe slices.
package helix

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/helixfall/internal/config"
	"github.com/vovakirdan/helixfall/internal/core"
	"github.com/vovakirdan/helixfall/internal/registry"
)

// GameID is the registry identifier of the helix game.
const GameID = "helix"

// Phase is the stage of the current round.
type Phase int

const (
	PhaseStarting  Phase = iota // Waiting for the start trigger, no physics
	PhaseCountdown              // Timer running, no physics
	PhaseRunning                // Physics and collision active
	PhaseGameOver               // Transient; the round resets in the same step
)

func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "starting"
	case PhaseCountdown:
		return "countdown"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Controls is the input consumed by one Advance call.
// Rotation flags are levels (held keys); Start and ToggleColor are edges.
type Controls struct {
	RotateCW    bool
	RotateCCW   bool
	Start       bool
	ToggleColor bool
}

// ControlsFromInput maps platform actions onto game controls.
func ControlsFromInput(in core.InputFrame) Controls {
	return Controls{
		RotateCW:    in.Has(core.ActionRotateCW),
		RotateCCW:   in.Has(core.ActionRotateCCW),
		Start:       in.Has(core.ActionStart),
		ToggleColor: in.Has(core.ActionToggleColor),
	}
}

// Game implements the helix game logic.
type Game struct {
	cfg        config.HelixConfig
	runtime    core.RuntimeConfig
	log        *log.Logger
	rng        core.Source
	factory    *Factory
	difficulty *config.DifficultyManager

	fixedConfig bool // Set by WithConfig; Reset then skips loading
	fixedSource bool // Set by WithSource; Reset then keeps rng

	ball         Ball
	score        int
	highScore    int
	lives        int
	userRotation float64
	active       []*Platform // Nearest (highest) first
	retired      []*Platform
	phase        Phase
	countdown    float64
	paused       bool

	now          float64 // Simulated seconds since Reset
	lastLifeLost float64
	squishStart  float64
	unmatched    int // Collisions that found no slice under the ball

	// Per-round statistics
	bounces     int
	livesGained int
	runTicks    int
	runSeconds  float64
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger used for round and anomaly events.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithSource fixes the random source instead of seeding from RuntimeConfig.
func WithSource(src core.Source) Option {
	return func(g *Game) {
		g.rng = src
		g.fixedSource = src != nil
	}
}

// WithConfig uses cfg as-is instead of loading from disk.
func WithConfig(cfg config.HelixConfig) Option {
	return func(g *Game) {
		g.cfg = cfg
		g.fixedConfig = true
	}
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var defaultLogger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger sets the logger given to games created through the registry.
func SetLogger(l *log.Logger) {
	defaultLogger = l
}

// New creates a new helix game instance. Call Reset before stepping it.
func New(opts ...Option) *Game {
	g := &Game{log: defaultLogger}
	if g.log == nil {
		g.log = log.New(io.Discard)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Helix Fall"
}

// Description summarises the controls for game listings.
func (g *Game) Description() string {
	return "Rotate the tower with ←/→, fall through the gaps, match colors with C"
}

// Reset initializes the game, clearing the high score.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixedConfig {
		cfg, err := config.Load(configPath)
		if err != nil {
			g.log.Warn("using default config", "err", err)
			cfg = config.DefaultHelixConfig()
		}
		config.ApplyPreset(&cfg, difficultyPreset)
		g.cfg = cfg
	}

	if !g.fixedSource {
		g.rng = core.NewSource(runtime.Seed)
	}

	g.factory = NewFactory(g.cfg.Platforms, NewPalette(g.cfg.Slices.Widths), g.rng)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.highScore = 0
	g.now = 0
	g.paused = false
	g.unmatched = 0
	g.ball.Color = 0
	g.resetRound()
}

// resetRound starts a fresh round, keeping the high score and ball color.
func (g *Game) resetRound() {
	if g.score > g.highScore {
		g.highScore = g.score
	}

	g.ball = Ball{
		Y:      g.cfg.Round.StartY,
		Radius: g.cfg.Physics.BallRadius,
		Color:  g.ball.Color,
	}
	g.score = 0
	g.lives = g.cfg.Round.Lives
	g.userRotation = 0
	g.phase = PhaseStarting
	g.countdown = 0
	g.lastLifeLost = math.Inf(-1)
	g.squishStart = math.Inf(-1)

	g.active = make([]*Platform, 0, g.cfg.Platforms.InitialCount+1)
	for i := 0; i < g.cfg.Platforms.InitialCount; i++ {
		p := g.factory.Create(-float64(i)*g.cfg.Platforms.Spacing, g.difficulty.Initial())
		g.active = append(g.active, &p)
	}
	g.retired = nil

	g.bounces = 0
	g.livesGained = 0
	g.runTicks = 0
	g.runSeconds = 0
}

// Step advances the game by one tick of 1/TickRate seconds.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if in.Has(core.ActionRestart) {
		g.paused = false
		if g.phase == PhaseStarting {
			return core.StepResult{State: g.State()}
		}
		return core.StepResult{State: g.State(), RoundOver: g.endRound(true)}
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	return g.Advance(g.runtime.TickSeconds(), ControlsFromInput(in))
}

// Advance moves the simulation forward by dt seconds.
// Rotation and color toggles apply in every phase; physics only while running.
func (g *Game) Advance(dt float64, c Controls) core.StepResult {
	g.now += dt

	g.applyRotation(c)
	if c.ToggleColor {
		g.ball.Color ^= 1
	}

	switch g.phase {
	case PhaseStarting:
		if c.Start {
			g.phase = PhaseCountdown
			g.countdown = g.cfg.Round.Countdown
		}
	case PhaseCountdown:
		g.countdown -= dt
		if g.countdown <= 0 {
			g.countdown = 0
			g.phase = PhaseRunning
		}
	}

	var result *core.RoundResult
	if g.phase == PhaseRunning {
		result = g.stepRunning(dt)
	}

	g.collectRetired()

	return core.StepResult{State: g.State(), RoundOver: result}
}

// applyRotation turns the stack; CW subtracts, CCW adds.
func (g *Game) applyRotation(c Controls) {
	sens := g.cfg.Physics.RotationSensitivity
	if c.RotateCW {
		g.userRotation = core.NormalizeAngle(g.userRotation - sens)
	}
	if c.RotateCCW {
		g.userRotation = core.NormalizeAngle(g.userRotation + sens)
	}
}

// stepRunning integrates the ball and resolves contact with the nearest
// platform. Returns a result when the round ends.
func (g *Game) stepRunning(dt float64) *core.RoundResult {
	g.runTicks++
	g.runSeconds += dt

	g.ball.Velocity += g.cfg.Physics.Gravity
	g.ball.Y += g.ball.Velocity

	if len(g.active) == 0 {
		return nil
	}
	top := g.active[0]
	platformTop := top.Top(g.cfg.Platforms.Thickness)
	if g.ball.Bottom()-platformTop > g.cfg.Physics.ContactEpsilon {
		return nil
	}

	if PowerupInReach(top.Powerup, g.userRotation, g.cfg.Powerups.Tolerance) {
		top.Powerup.Collected = true
		top.Powerup = nil
		g.lives++
		g.livesGained++
	}

	if !HasCollided(g.ball, top, g.userRotation) {
		g.score++
		g.addPlatform()
		g.retireTop()
		return nil
	}

	good, matched := ResolvesGoodSlice(g.ball, top, g.userRotation)
	if !matched {
		g.unmatched++
		g.log.Warn("no slice under ball, treating as good",
			"platform_y", top.Y,
			"rotation", top.Rotation,
			"user_rotation", g.userRotation)
	}
	if good {
		g.bounce(platformTop)
		return nil
	}

	if g.lives > 0 && g.now-g.lastLifeLost > g.cfg.Round.LifeLossWindow {
		g.lives--
		g.lastLifeLost = g.now
	}
	if g.lives == 0 {
		return g.endRound(false)
	}
	g.bounce(platformTop)
	return nil
}

// bounce sends the ball back up from a platform surface.
func (g *Game) bounce(platformTop float64) {
	g.ball.Y = platformTop + g.ball.Radius
	g.ball.Velocity = g.cfg.Physics.BounceVelocity
	g.squishStart = g.now
	g.bounces++
}

// spawnDifficulty is the bad-slice probability for the next platform.
func (g *Game) spawnDifficulty() float64 {
	return g.difficulty.Level(g.score)
}

// addPlatform extends the stack one spacing below the lowest active platform.
func (g *Game) addPlatform() {
	y := -g.cfg.Platforms.Spacing
	if n := len(g.active); n > 0 {
		y = g.active[n-1].Y - g.cfg.Platforms.Spacing
	}

	p := g.factory.Create(y, g.spawnDifficulty())
	if freq := g.cfg.Powerups.Frequency; freq > 0 && g.score%freq == 0 {
		p.Powerup = g.factory.NewPowerup(y)
	}
	g.active = append(g.active, &p)
}

// retireTop moves the nearest platform to the retired queue.
func (g *Game) retireTop() {
	top := g.active[0]
	top.Retired = true
	top.RetiredAt = g.now
	g.active = g.active[1:]
	g.retired = append(g.retired, top)
}

// collectRetired drops retired platforms whose animation has finished.
func (g *Game) collectRetired() {
	kept := g.retired[:0]
	for _, p := range g.retired {
		if g.now-p.RetiredAt < g.cfg.Round.RetireDuration {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(g.retired); i++ {
		g.retired[i] = nil
	}
	g.retired = kept
}

// endRound records the finished round and starts a new one.
func (g *Game) endRound(forfeit bool) *core.RoundResult {
	g.phase = PhaseGameOver

	result := &core.RoundResult{
		Score:       g.score,
		Bounces:     g.bounces,
		LivesGained: g.livesGained,
		Ticks:       g.runTicks,
		Seconds:     g.runSeconds,
		Forfeit:     forfeit,
	}

	g.log.Debug("round over",
		"score", g.score,
		"high_score", max(g.score, g.highScore),
		"bounces", g.bounces,
		"lives_gained", g.livesGained,
		"forfeit", forfeit)

	g.resetRound()
	return result
}

// RetiredOffset returns how far a retired platform has drifted upward at
// time now. It has no side effects; expired platforms are removed by the
// game loop, not by this query.
func RetiredOffset(p *Platform, now float64, round config.HelixRound) float64 {
	if !p.Retired {
		return 0
	}
	elapsed := now - p.RetiredAt
	if elapsed >= round.RetireDuration {
		return round.RetireMaxOffset
	}
	return math.Min(math.Max(elapsed, 0)*round.RetireSpeed, round.RetireMaxOffset)
}

// squishScale returns the ball's (x, y) scale for the bounce animation.
func (g *Game) squishScale() (float64, float64) {
	elapsed := g.now - g.squishStart
	if elapsed >= g.cfg.Round.SquishDuration {
		return 1, 1
	}
	s := 0.3*math.Sin(8*elapsed) + 0.7
	return 2 - s, s
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		HighScore: g.highScore,
		Lives:     g.lives,
		Phase:     g.phase.String(),
		Paused:    g.paused,
	}
}

// Config returns the configuration the game is running with.
func (g *Game) Config() config.HelixConfig {
	return g.cfg
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
