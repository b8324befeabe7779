package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the preview SSH server",
	Long: `Start an SSH server that shows every connecting user a freshly
generated level in the terminal preview.

A numeric user name is used as the seed, so a level can be shared by
telling someone its number. Every session is recorded in the history.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.scrollgen/host_key

Examples:
  scrollgen serve                           # Listen on :23234 with auto-generated key
  scrollgen serve --ssh :2222               # Listen on port 2222
  scrollgen serve --preset highlands

Users can connect with:
  ssh localhost -p 23234
  ssh 42@localhost -p 23234   # seed 42`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagZoom, "zoom", 0, "Level pixels per terminal column (0 = tile size / 4)")
}

func runServe(_ *cobra.Command, _ []string) {
	p, err := newPipeline(logger.WithPrefix("scrollgen-ssh"))
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

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Preview = tui.PreviewOptions{
		Zoom:     flagZoom,
		Sky:      sky,
		Generate: p.Generate,
		Logger:   p.logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting scrollgen SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
