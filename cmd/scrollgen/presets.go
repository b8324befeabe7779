package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/scrollgen/internal/config"
	"github.com/vovakirdan/scrollgen/internal/storage"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List terrain presets",
	Long: `Shows every terrain preset with a short description and, when the
history database is available, how often it has been used.`,
	Run: runPresets,
}

func runPresets(_ *cobra.Command, _ []string) {
	var stats map[string]*storage.PresetStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, err = store.AllPresetStats()
		if err != nil {
			logger.Warn("cannot read preset stats", "err", err)
		}
		store.Close()
	}

	presets := config.Presets()

	// Calculate column widths
	maxLen := len("Preset")
	for _, p := range presets {
		if len(p) > maxLen {
			maxLen = len(p)
		}
	}

	fmt.Println("Terrain presets:")
	fmt.Println()
	fmt.Printf("  %-*s  %-5s  %-8s  %s\n", maxLen, "Preset", "Runs", "Avg ms", "Description")
	fmt.Printf("  %-*s  %-5s  %-8s  %s\n", maxLen, "------", "----", "------", "-----------")
	for _, p := range presets {
		runs, avg := "-", "-"
		if s, ok := stats[string(p)]; ok {
			runs = fmt.Sprintf("%d", s.Runs)
			avg = fmt.Sprintf("%.0f", s.AvgDurationMs)
		}
		fmt.Printf("  %-*s  %-5s  %-8s  %s\n", maxLen, p, runs, avg, p.Description())
	}

	fmt.Println()
	fmt.Println("Run 'scrollgen generate --preset <name>' to use one.")
}
