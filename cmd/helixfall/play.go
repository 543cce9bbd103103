package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/helixfall/internal/core"
	"github.com/vovakirdan/helixfall/internal/games/helix"
	"github.com/vovakirdan/helixfall/internal/platform/tui"
	"github.com/vovakirdan/helixfall/internal/registry"
	"github.com/vovakirdan/helixfall/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game of Helix Fall in the current terminal.

Controls:
  Left/A/B     - Turn the tower counter-clockwise
  Right/D/V    - Turn the tower clockwise
  Space/Enter  - Start the countdown
  C            - Swap ball color (inverts which slices are safe)
  P/Esc        - Pause
  R            - Abandon the round
  Tab          - Session scoreboard
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Lower starting difficulty, three lives
  normal - Default progression
  hard   - Higher starting difficulty, rarer extra lives
  fixed  - No progression, stays at the configured base level

Examples:
  helixfall play
  helixfall play --difficulty easy
  helixfall play --config ./my-helix.toml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	game, err := registry.Create(helix.GameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Round history only lives as long as this process
	store, err := storage.Open(storage.MemoryDSN)
	if err != nil {
		logger.Warn("could not open round ledger", "err", err)
		// Continue without storage - game still works
		store = nil
	}

	final, runErr := tui.Run(game, store, cfg, tui.WithLogger(logger))

	if store != nil {
		if runErr == nil && final.Rounds() > 0 {
			printSessionStats(store)
		}
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}

// printSessionStats prints a short summary once the terminal is restored.
func printSessionStats(store *storage.Store) {
	stats, err := store.Stats(helix.GameID)
	if err != nil {
		logger.Warn("cannot read session stats", "err", err)
		return
	}
	fmt.Printf("Rounds: %d  Best: %d  Average: %.1f  Bounces: %d\n",
		stats.Rounds, stats.Best, stats.Average, stats.TotalBounces)
}
