package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/platform/tui"
)

var (
	flagZoom       int
	flagPreviewFPS int
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview a level in the terminal",
	Long: `Generate a level and scroll through it in the terminal, two pixels
per character cell.

Controls:
  ←/→ A/D    - Scroll left/right
  ↑/↓ W/S    - Scroll up/down
  Space      - Play/pause tree animation
  N/Tab      - Next animation frame
  R          - Regenerate with a new seed
  ?          - Toggle help
  Q/Ctrl+C   - Quit

Examples:
  scrollgen preview
  scrollgen preview --seed 42 --zoom 2
  scrollgen preview --preset flat`,
	Run: runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&flagZoom, "zoom", 0, "Level pixels per terminal column (0 = tile size / 4)")
	previewCmd.Flags().IntVar(&flagPreviewFPS, "fps", core.DefaultConfig().TickRate, "Animation tick rate")
}

func runPreview(_ *cobra.Command, _ []string) {
	p, err := newPipeline(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer p.Close()

	sky, err := core.ParseHex(flagSky)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid --sky: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagPreviewFPS,
		Seed:     resolveSeed(flagSeed),
	}
	opts := tui.PreviewOptions{
		Zoom:     flagZoom,
		Sky:      sky,
		Generate: p.Generate,
		Logger:   logger,
	}
	if err := tui.Run(opts, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
