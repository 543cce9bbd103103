package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/helixfall/internal/core"
	"github.com/vovakirdan/helixfall/internal/games/helix"
	"github.com/vovakirdan/helixfall/internal/storage"
)

// simPlayer is recorded as the player of autopilot rounds.
const simPlayer = "autopilot"

var (
	flagRounds   int
	flagMaxTicks int
	flagTop      int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Let the autopilot play and print statistics",
	Long: `Runs rounds headless with an autopilot that turns the nearest gap under
the ball. Useful for checking how a config or difficulty preset plays.

A round that is still going after --max-ticks is abandoned and counted
as a forfeit.

Examples:
  helixfall sim
  helixfall sim --rounds 100 --seed 7
  helixfall sim --difficulty hard --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRounds, "rounds", 10, "Number of rounds to play")
	simCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 60*60*5, "Tick limit per round (0 = unlimited)")
	simCmd.Flags().IntVar(&flagTop, "top", 5, "Number of best rounds to list")
}

func runSim(_ *cobra.Command, _ []string) error {
	if flagRounds <= 0 {
		return fmt.Errorf("--rounds must be positive, got %d", flagRounds)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	game := helix.New()
	game.Reset(core.RuntimeConfig{TickRate: flagFPS, Seed: seed})

	cfg := game.Config()
	logger.Debug("simulation config",
		"seed", seed,
		"lives", cfg.Round.Lives,
		"initial_difficulty", cfg.Difficulty.InitialLevel,
		"progression", cfg.Difficulty.Enabled,
	)

	store, err := storage.Open(storage.MemoryDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	started := time.Now()
	var pilot helix.Autopilot
	for i := range flagRounds {
		res := helix.PlayRound(game, pilot, flagMaxTicks)

		logger.Debug("round finished",
			"round", i+1,
			"score", res.Score,
			"bounces", res.Bounces,
			"lives_gained", res.LivesGained,
			"seconds", core.RoundTo(res.Seconds, 2),
			"forfeit", res.Forfeit,
		)

		if _, err := store.SaveRound(storage.RoundRecord{
			GameID:        helix.GameID,
			Player:        simPlayer,
			Score:         res.Score,
			Bounces:       res.Bounces,
			LivesGained:   res.LivesGained,
			DurationTicks: res.Ticks,
			Seed:          seed,
			Forfeit:       res.Forfeit,
		}); err != nil {
			return err
		}
	}

	stats, err := store.Stats(helix.GameID)
	if err != nil {
		return err
	}
	logger.Info("simulation done",
		"rounds", stats.Rounds,
		"best", stats.Best,
		"average", core.RoundTo(stats.Average, 2),
		"forfeits", stats.Forfeits,
		"unmatched_slices", game.Snapshot().UnmatchedSlices,
		"elapsed", time.Since(started).Round(time.Millisecond),
	)

	top, err := store.TopRounds(helix.GameID, flagTop)
	if err != nil {
		return err
	}

	fmt.Printf("Seed: %d\n", seed)
	fmt.Printf("Rounds: %d  Best: %d  Average: %.2f  Bounces: %d  Forfeits: %d\n",
		stats.Rounds, stats.Best, stats.Average, stats.TotalBounces, stats.Forfeits)
	fmt.Println()
	fmt.Printf("  %-4s  %5s  %7s  %6s\n", "Rank", "Score", "Bounces", "Ticks")
	for i, r := range top {
		fmt.Printf("  %-4s  %5d  %7d  %6d\n", fmt.Sprintf("#%d", i+1), r.Score, r.Bounces, r.DurationTicks)
	}
	return nil
}
