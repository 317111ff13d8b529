package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresBest  bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show match history",
	Long: `Display recent matches, or the best ones with --best, followed by
totals over the whole history.

Examples:
  pong scores
  pong scores --best --limit 5
  pong scores --tui`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of matches to show")
	scoresCmd.Flags().BoolVar(&flagScoresBest, "best", false, "Order by winning margin instead of date")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the history full screen")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresTUI {
		rc := runtimeConfig()
		if err := tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var matches []storage.MatchResult
	if flagScoresBest {
		matches, err = store.TopMatches(flagScoresLimit)
	} else {
		matches, err = store.RecentMatches(flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		os.Exit(1)
	}

	title := "Recent matches"
	if flagScoresBest {
		title = "Best matches"
	}
	fmt.Println(title)
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pong play' to start the history!")
		return
	}

	fmt.Printf("  %-4s  %-9s  %-6s  %-5s  %-10s  %-8s  %s\n", "#", "CPU : You", "Result", "Mode", "Player", "Length", "Date")
	fmt.Printf("  %-4s  %-9s  %-6s  %-5s  %-10s  %-8s  %s\n", "--", "---------", "------", "----", "------", "------", "----")
	for i, m := range matches {
		player := m.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-9s  %-6s  %-5s  %-10s  %-8s  %s\n",
			i+1,
			fmt.Sprintf("%d : %d", m.AIScore, m.PlayerScore),
			m.Outcome(),
			m.Mode,
			player,
			m.Duration.Round(time.Second),
			m.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.Stats()
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Matches: %d  (W %d / L %d / D %d)\n", stats.Matches, stats.Wins, stats.Losses, stats.Draws)
	fmt.Printf("Points:  %d for, %d against, best margin %+d\n", stats.PointsFor, stats.PointsAgainst, stats.BestMargin)
	fmt.Printf("Played:  %s\n", stats.PlayTime.Round(time.Second))
}
