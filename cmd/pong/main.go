// pong is a terminal pong game: one paddle for you, one for the CPU.
//
// Usage:
//
//	pong                     - Title menu (play, watch, match history)
//	pong play                - Start a match straight away
//	pong serve               - Start SSH server for remote play
//	pong sim                 - Run a headless autopilot match
//	pong scores              - Show match history
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--db <path>          - Set database path (default: ~/.pong/pong.db)
//	--config <path>      - Use a specific config file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

const defaultDBPath = "~/.pong/pong.db"

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfigPath string
	flagLogLevel   string

	// Set up by loadConfig before any command runs.
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "Pong - you against the CPU in your terminal",
	Long: `Pong is a terminal version of the classic: your paddle on the right,
the CPU's on the left. Miss the ball and the CPU scores; get it past the
CPU and you do. After every point the ball waits three seconds before
it is served again.

Available commands:
  play     - Start a match
  serve    - Start SSH server for remote play
  sim      - Run a headless match with an autopilot
  scores   - View match history

Run without a command for the title menu.

Examples:
  pong
  pong play
  pong serve --ssh :2222
  pong sim --ticks 3600 --format yaml
  pong scores --best`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	Run:               runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig reads .env, the config file and the environment, then lets
// explicitly set flags win.
func loadConfig(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}

	loaded, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Display.TickRate = flagFPS
	}
	if flags.Changed("db") || cfg.Storage.Path == "" {
		cfg.Storage.Path = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if cfg.Display.TickRate <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", cfg.Display.TickRate)
	}

	logger = newLogger(os.Stderr)
	return nil
}

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pong",
	})
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		l.Warn("unknown log level, using info", "level", cfg.Log.Level)
		level = log.InfoLevel
	}
	l.SetLevel(level)
	return l
}

// fileLogger returns a logger for full-screen commands, which cannot
// write to the terminal they draw on. Logs go to ~/.pong/pong.log.
func fileLogger() (*log.Logger, func()) {
	dir := config.Dir()
	if dir == "" {
		return log.New(io.Discard), func() {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "pong.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// runtimeConfig builds display settings for the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	rc := core.DefaultConfig()
	rc.ScreenW = width
	rc.ScreenH = height
	rc.TickRate = cfg.Display.TickRate
	rc.CellWidth = cfg.Display.CellWidth
	rc.CellHeight = cfg.Display.CellHeight
	return rc
}

// openStore opens match history, degrading to no history on failure.
func openStore(l *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		l.Warn("could not open match history, continuing without it", "error", err)
		return nil
	}
	return store
}

func runMenu(_ *cobra.Command, _ []string) {
	l, closeLog := fileLogger()
	defer closeLog()

	store := openStore(l)
	runErr := tui.RunSession(tui.SessionOptions{
		Store:   store,
		Logger:  l,
		KeyHold: cfg.Display.KeyHold,
	}, runtimeConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
