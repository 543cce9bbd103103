package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means use current time in platform layer
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// TickSeconds returns the simulated duration of one tick.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int    // Current score
	HighScore int    // Best score this process has seen
	Lives     int    // Remaining lives
	Phase     string // Game-defined phase name ("starting", "running", ...)
	Paused    bool   // Whether the game is paused
}

// RoundResult summarises a round that just ended.
type RoundResult struct {
	Score       int     // Points scored in the round
	Bounces     int     // Times the ball bounced off a slice
	LivesGained int     // Extra lives collected
	Ticks       int     // Running ticks the round lasted
	Seconds     float64 // Simulated seconds spent running
	Forfeit     bool    // True when the player restarted instead of running out of lives
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State GameState

	// RoundOver is set on the tick a round ends. The game has already
	// reset itself by the time the platform sees it.
	RoundOver *RoundResult
}
