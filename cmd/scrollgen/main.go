// scrollgen generates side-scrolling platformer levels: noise-driven
// terrain with eroded slopes, a ground tileset, parallax hills and animated
// trees, all rendered procedurally.
//
// Usage:
//
//	scrollgen generate [dir]  - Generate a level and export PNGs + manifest
//	scrollgen preview         - Preview a level in the terminal
//	scrollgen view            - Open a level in a window (ebiten builds)
//	scrollgen serve           - Serve the terminal preview over SSH
//	scrollgen history         - Browse recorded generation runs
//	scrollgen presets         - List terrain presets
//	scrollgen config          - Write the default config file
//
// Global flags:
//
//	--seed <value>     - RNG seed for a reproducible level
//	--preset <name>    - Terrain preset applied over the config
//	--config <path>    - Custom terrain config YAML
//	--db <path>        - Run history database (default: ~/.scrollgen/runs.db)
//	--sky <#rrggbb>    - Sky color behind the level
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed     int64
	flagPreset   string
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagSky      string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scrollgen",
	Short: "Procedural side-scroller level generator",
	Long: `scrollgen builds side-scrolling platformer levels from a seed:
fBm terrain with slope erosion, a generated ground tileset, two parallax
hill layers, L-system plants and animated branching trees.

Available commands:
  generate - Generate a level and export it to a directory
  preview  - Scroll through a level in the terminal
  view     - Scroll through a level in a window
  serve    - Start SSH server hosting the terminal preview
  history  - Browse recorded generation runs
  presets  - List terrain presets
  config   - Write the default config for editing

Examples:
  scrollgen generate --seed 42 ./level
  scrollgen preview --preset highlands
  scrollgen serve --ssh :2222
  scrollgen history`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		lvl, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "scrollgen",
			Level:           lvl,
		})
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Terrain preset: flat, highlands, lakeside, meadow")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom terrain config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.scrollgen/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagSky, "sky", "#9cc9e8", "Sky color behind the level")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(configCmd)
}
