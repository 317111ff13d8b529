package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/platform/tui"
)

var flagDemo bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match",
	Long: `Start a match against the CPU.

Controls:
  W/Up       - Paddle up (hold)
  S/Down     - Paddle down (hold)
  P/Esc      - Pause
  R          - Restart
  B          - Leave (while paused)
  Ctrl+S     - Screenshot to ~/.pong/screenshots
  Q/Ctrl+C   - Quit

The match is recorded in the history when you quit or restart.

Examples:
  pong play
  pong play --demo
  pong play --fps 30`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagDemo, "demo", false, "Let an autopilot play your paddle")
}

func runPlay(_ *cobra.Command, _ []string) {
	l, closeLog := fileLogger()
	defer closeLog()

	store := openStore(l)
	runErr := tui.Run(tui.ModelOptions{
		Store:   store,
		Logger:  l,
		KeyHold: cfg.Display.KeyHold,
		Demo:    flagDemo,
	}, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
