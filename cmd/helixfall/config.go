package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/helixfall/internal/config"
)

var (
	flagFormat   string
	flagDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Loads the configuration the same way play does (--config, then
~/.helixfall/configs/helix.yaml or helix.toml, then ./configs/helix.yaml,
then the built-in defaults), applies --difficulty and prints the result.

Examples:
  helixfall config
  helixfall config --difficulty hard
  helixfall config --defaults > ./configs/helix.yaml
  helixfall config --format toml > ~/.helixfall/configs/helix.toml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml or toml")
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults file with its comments")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.GetDefaultYAML())
		return err
	}

	format := config.ParseFormat(flagFormat)
	if format == "" {
		return fmt.Errorf("unknown format %q (want yaml or toml)", flagFormat)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyPreset(&cfg, config.ParsePreset(flagDifficulty))

	data, err := config.Encode(cfg, format)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
