package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/carrot-jump/internal/games/carrot"
	"github.com/vovakirdan/carrot-jump/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresReset bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high score and best runs",
	Long: `Display the persisted high score, run statistics and the best runs.

Examples:
  carrotjump scores
  carrotjump scores --limit 20
  carrotjump scores --reset
  carrotjump scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Reset the high score to 0")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagScoresReset {
		if err := store.SaveHighScore(carrot.GameID, 0); err != nil {
			return err
		}
		fmt.Println("High score reset.")
	}
	if flagScoresClear {
		if err := store.ClearRuns(carrot.GameID); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
	}
	if flagScoresReset || flagScoresClear {
		return nil
	}

	high, err := store.LoadHighScore(carrot.GameID)
	if err != nil {
		return err
	}
	stats, err := store.GetStats(carrot.GameID)
	if err != nil {
		return err
	}
	runs, err := store.TopRuns(carrot.GameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve runs: %w", err)
	}

	fmt.Println("High Scores - Carrot Jump")
	fmt.Println()
	fmt.Printf("High score: %d\n", high)

	if len(runs) == 0 {
		fmt.Println()
		fmt.Println("No runs recorded yet.")
		fmt.Println("Play 'carrotjump play' to set the first high score!")
		return nil
	}

	fmt.Printf("Runs: %d   Average: %.1f   Carrots: %d   Last played: %s\n",
		stats.RunsCount, stats.AvgScore, stats.TotalPickups, stats.LastPlayed.Format("2006-01-02 15:04"))
	fmt.Println()

	fmt.Printf("  %-4s  %-6s  %-7s  %-6s  %-10s  %s\n", "Rank", "Score", "Carrots", "Time", "Difficulty", "Date")
	fmt.Printf("  %-4s  %-6s  %-7s  %-6s  %-10s  %s\n", "----", "-----", "-------", "----", "----------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-7d  %-6s  %-10s  %s\n",
			i+1, r.Score, r.Pickups, r.Duration.Round(time.Second), r.Difficulty, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}
