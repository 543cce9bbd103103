// helixfall is a helix-jump endless runner for the terminal.
//
// Usage:
//
//	helixfall                 - Play in this terminal (same as "play")
//	helixfall play            - Play in this terminal
//	helixfall serve           - Start SSH server for remote play
//	helixfall sim             - Run autopilot rounds headless and print stats
//	helixfall config          - Print the effective configuration
//	helixfall list            - List registered games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed (default: time based)
//	--config <path>       - Custom config file (.yaml or .toml)
//	--difficulty <preset> - easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/helixfall/internal/config"
	"github.com/vovakirdan/helixfall/internal/games/helix"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

// logger is built in the root pre-run hook.
var (
	logger  = log.New(io.Discard)
	logSink io.Closer
)

func main() {
	err := rootCmd.Execute()
	if logSink != nil {
		logSink.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "helixfall",
	Short: "Helix Fall - drop a ball down a spinning tower in your terminal",
	Long: `Helix Fall is an endless runner: a ball falls through a stack of rotating
platforms. Turn the tower so the ball drops through the gaps, bounces on
safe slices and avoids the dangerous ones.

Available commands:
  play     - Play in this terminal (default)
  serve    - Start SSH server for remote play
  sim      - Let the autopilot play and print statistics
  config   - Print the effective configuration
  list     - Show registered games

Examples:
  helixfall
  helixfall play --difficulty hard
  helixfall serve --ssh :2222
  helixfall sim --rounds 50 --seed 7
  helixfall config --format toml > ~/.helixfall/configs/helix.toml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Assigned here rather than in the literal: setup refers back to rootCmd
	rootCmd.PersistentPreRunE = setup
	rootCmd.RunE = runPlay

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(listCmd)
}

// setup validates global flags, builds the logger and hands the game
// package its config path, preset and logger.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return fmt.Errorf("cannot open log file: %w", openErr)
		}
		out = f
		logSink = f
	case interactive(cmd):
		// Log lines would tear the alternate screen
		out = io.Discard
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "helixfall",
	})

	if err := checkConfig(flagConfig); err != nil {
		return err
	}

	helix.SetConfigPath(flagConfig)
	helix.SetDifficultyPreset(flagDifficulty)
	helix.SetLogger(logger.WithPrefix("helix"))
	return nil
}

// interactive reports whether cmd takes over the local terminal.
func interactive(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == playCmd
}

// checkConfig loads a custom config so a bad file stops the command
// before a game quietly falls back to the defaults.
func checkConfig(path string) error {
	if path == "" {
		return nil
	}
	_, err := config.Load(path)
	return err
}
