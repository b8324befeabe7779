package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/scrollgen/internal/config"
)

var (
	flagForce bool
	flagPrint bool
)

var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Write the default terrain config",
	Long: `Write the terrain config in effect (defaults, plus --config and
--preset when given) so it can be edited. Without a path the file goes to
~/.scrollgen/configs/terrain.yaml, where every command picks it up.

Examples:
  scrollgen config
  scrollgen config --preset highlands ./configs/terrain.yaml
  scrollgen config --print`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")
	configCmd.Flags().BoolVar(&flagPrint, "print", false, "Print the embedded defaults and exit")
}

func runConfig(_ *cobra.Command, args []string) {
	if flagPrint {
		//nolint:errcheck // Nothing useful to do if stdout is gone
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		config.ApplyPreset(&cfg, preset)
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot get home directory: %v\n", err)
			os.Exit(1)
		}
		path = filepath.Join(home, ".scrollgen", "configs", config.ConfigFile)
	}

	if _, err := os.Stat(path); err == nil && !flagForce {
		fmt.Fprintf(os.Stderr, "Error: %s exists (use --force to overwrite)\n", path)
		os.Exit(1)
	}
	if err := config.Save(path, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
