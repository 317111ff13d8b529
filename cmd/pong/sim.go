package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

var (
	flagSimTicks  int
	flagSimWidth  float64
	flagSimHeight float64
	flagSimFormat string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless match",
	Long: `Run the simulation without a terminal, with an autopilot holding the
player's keys, and print the result. Runs are deterministic: the same
flags always give the same hash.

Examples:
  pong sim
  pong sim --ticks 36000 --width 1600 --height 960
  pong sim --format yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		opts := simOptions{
			Ticks:  flagSimTicks,
			Width:  flagSimWidth,
			Height: flagSimHeight,
			DT:     time.Second / time.Duration(cfg.Display.TickRate),
			Format: flagSimFormat,
		}
		if err := runSim(os.Stdout, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Number of ticks to run")
	simCmd.Flags().Float64Var(&flagSimWidth, "width", 1280, "Window width in world units")
	simCmd.Flags().Float64Var(&flagSimHeight, "height", 768, "Window height in world units")
	simCmd.Flags().StringVar(&flagSimFormat, "format", "text", "Output format: text or yaml")
}

type simOptions struct {
	Ticks  int
	Width  float64
	Height float64
	DT     time.Duration
	Format string
}

// simPoint is one point won during a headless run.
type simPoint struct {
	Tick   uint64 `yaml:"tick"`
	Scorer string `yaml:"scorer"`
	Score  string `yaml:"score"`
}

type simReport struct {
	Width      float64       `yaml:"width"`
	Height     float64       `yaml:"height"`
	Ticks      int           `yaml:"ticks"`
	Collisions int           `yaml:"collisions"`
	Points     []simPoint    `yaml:"points"`
	Final      pong.Snapshot `yaml:"final"`
	Hash       string        `yaml:"hash"`
}

func simulate(opts simOptions) (simReport, error) {
	if opts.Ticks < 0 {
		return simReport{}, fmt.Errorf("--ticks must not be negative, got %d", opts.Ticks)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return simReport{}, fmt.Errorf("window must be positive, got %gx%g", opts.Width, opts.Height)
	}
	if opts.DT <= 0 {
		return simReport{}, fmt.Errorf("tick length must be positive, got %s", opts.DT)
	}

	sim := pong.NewSim(opts.Width, opts.Height)
	pilot := pong.NewAutopilot(sim)
	report := simReport{
		Width:  opts.Width,
		Height: opts.Height,
		Ticks:  opts.Ticks,
		Points: []simPoint{},
	}

	for range opts.Ticks {
		res := sim.Step(pilot, opts.DT)
		report.Collisions += len(res.Collisions)
		for _, s := range res.Scored {
			report.Points = append(report.Points, simPoint{
				Tick:   res.Tick,
				Scorer: s.String(),
				Score:  res.Score.String(),
			})
		}
	}

	report.Final = sim.Snapshot()
	report.Hash = fmt.Sprintf("%016x", report.Final.Hash())
	return report, nil
}

func runSim(w io.Writer, opts simOptions) error {
	report, err := simulate(opts)
	if err != nil {
		return err
	}

	switch opts.Format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return enc.Close()
	case "text", "":
		return writeSimText(w, report)
	default:
		return fmt.Errorf("unknown format %q (want text or yaml)", opts.Format)
	}
}

func writeSimText(w io.Writer, r simReport) error {
	f := r.Final
	lines := []string{
		fmt.Sprintf("Window:     %gx%g", r.Width, r.Height),
		fmt.Sprintf("Ticks:      %d", f.Tick),
		fmt.Sprintf("Score:      %s (CPU : You)", f.Score),
		fmt.Sprintf("Points:     %d", len(r.Points)),
		fmt.Sprintf("Collisions: %d", r.Collisions),
		fmt.Sprintf("Ball:       (%g, %g) moving (%g, %g)", f.BallX, f.BallY, f.BallVX, f.BallVY),
		fmt.Sprintf("Paddles:    you %g, CPU %g", f.PlayerY, f.AIY),
	}
	if f.Countdown != "" {
		lines = append(lines, fmt.Sprintf("Serve in:   %s", f.Countdown))
	}
	lines = append(lines, fmt.Sprintf("Hash:       %s", r.Hash))

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
