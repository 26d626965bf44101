package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chain-arcade/internal/registry"
	"github.com/vovakirdan/chain-arcade/internal/storage"
)

var flagRuns int

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores and recent runs for a game",
	Long: `Display the top 10 high scores for the specified game, its lifetime
statistics, and the most recent recorded runs.

Examples:
  arcade scores towers
  arcade scores ritual --runs 20`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRuns, "runs", 5, "Number of recent runs to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if err := requireGame(gameID); err != nil {
		return err
	}

	title := gameID
	for _, g := range registry.List() {
		if g.ID == gameID {
			title = g.Title
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "High Scores - %s\n\n", title)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'arcade play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %d  Average: %.1f  Runs: %d  Chain failures: %d\n",
		stats.HighScore, stats.AvgScore, stats.Runs, stats.Failures)
	if !stats.LastPlayed.IsZero() {
		fmt.Fprintf(out, "Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}

	if flagRuns <= 0 {
		return nil
	}
	runs, err := store.RecentRuns(gameID, flagRuns)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	if len(runs) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recent runs:")
	fmt.Fprintf(out, "  %-10s  %-8s  %-8s  %-6s  %s\n", "Outcome", "Score", "Time", "Faults", "Date")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-10s  %-8d  %-8s  %-6d  %s\n",
			r.Outcome, r.Score, formatTicks(r.Ticks), r.Failures, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// formatTicks renders a tick count as m:ss at the fixed simulation rate.
func formatTicks(ticks int) string {
	secs := ticks / 60
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
