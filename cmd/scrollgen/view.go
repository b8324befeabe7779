package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/viewer"
)

var (
	flagWindowScale int
	flagViewW       int
	flagViewH       int
	flagViewFPS     int
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open a level in a window",
	Long: `Generate a level and scroll through it in a window with full
parallax. Needs a binary built with -tags ebiten.

Controls:
  ←/→ A/D    - Scroll left/right (hold)
  ↑/↓ W/S    - Scroll up/down (hold)
  Space      - Play/pause tree animation
  N/Tab      - Next animation frame
  R          - Regenerate with a new seed
  Q/Esc      - Quit

Examples:
  scrollgen view --seed 42
  scrollgen view --scale 3 --width 320 --height 180`,
	Run: runView,
}

func init() {
	viewCmd.Flags().IntVar(&flagWindowScale, "scale", 2, "Window pixels per level pixel")
	viewCmd.Flags().IntVar(&flagViewW, "width", 0, "Viewport width in level pixels (0 = auto)")
	viewCmd.Flags().IntVar(&flagViewH, "height", 0, "Viewport height in level pixels (0 = auto)")
	viewCmd.Flags().IntVar(&flagViewFPS, "fps", 4, "Animation frames per second")
}

func runView(_ *cobra.Command, _ []string) {
	if !viewer.Available {
		fmt.Fprintln(os.Stderr, "Error: this scrollgen was built without window support.")
		fmt.Fprintln(os.Stderr, "Rebuild with: go build -tags ebiten ./cmd/scrollgen")
		os.Exit(1)
	}

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

	err = viewer.Run(viewer.Options{
		Title:    fmt.Sprintf("scrollgen - %s", p.preset),
		Seed:     resolveSeed(flagSeed),
		Scale:    flagWindowScale,
		ViewW:    flagViewW,
		ViewH:    flagViewH,
		FrameTPS: flagViewFPS,
		Sky:      sky.RGBA(),
		Generate: p.Generate,
		Logger:   logger,
	})
	if err != nil && !errors.Is(err, viewer.ErrNoWindow) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
