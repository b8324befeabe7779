package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/scrollgen/internal/platform/tui"
	"github.com/vovakirdan/scrollgen/internal/storage"
)

var (
	flagLimit  int
	flagPlain  bool
	flagClear  bool
	flagBySeed bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded generation runs",
	Long: `Show the generation runs recorded in the history database.

On a terminal this opens an interactive table with one tab per preset.
With --plain, or when output is not a terminal, it prints the most recent
runs instead.

Examples:
  scrollgen history
  scrollgen history --plain --limit 5
  scrollgen history --seed 42 --by-seed
  scrollgen history --clear`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to print with --plain")
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print runs instead of opening the browser")
	historyCmd.Flags().BoolVar(&flagBySeed, "by-seed", false, "Print only runs with the --seed value")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")
		return
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if !flagPlain && !flagBySeed && interactive {
		width, height, termErr := term.GetSize(int(os.Stdout.Fd()))
		if termErr != nil {
			width, height = 80, 24
		}
		if err := tui.RunHistory(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var runs []storage.Run
	if flagBySeed {
		runs, err = store.RunsBySeed(flagSeed)
	} else {
		runs, err = store.RecentRuns(flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	printRuns(runs)
}

func printRuns(runs []storage.Run) {
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'scrollgen generate' to create a level.")
		return
	}

	fmt.Printf("  %-5s  %-20s  %-10s  %-7s  %-6s  %-6s  %s\n", "ID", "Seed", "Preset", "Size", "Trees", "ms", "Date")
	fmt.Printf("  %-5s  %-20s  %-10s  %-7s  %-6s  %-6s  %s\n", "--", "----", "------", "----", "-----", "--", "----")
	for _, r := range runs {
		fmt.Printf("  %-5d  %-20d  %-10s  %-7s  %-6s  %-6d  %s\n",
			r.ID, r.Seed, r.Preset,
			fmt.Sprintf("%dx%d", r.Cols, r.Rows),
			fmt.Sprintf("%d+%d", r.Trees, r.BackTrees),
			r.DurationMs,
			r.CreatedAt.Format("2006-01-02 15:04"))
		if r.Output != "" {
			fmt.Printf("         -> %s\n", r.Output)
		}
	}
}
