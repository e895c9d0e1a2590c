package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime quiz statistics",
	Long:  `Show the number of quizzes played, the best game and lifetime accuracy.`,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openStatsStore()
	if err != nil {
		return err
	}
	defer store.Close()

	snapshot, err := store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to read statistics: %w", err)
	}

	fmt.Printf("Quizzes played: %d\n", snapshot.GamesCount)
	if snapshot.GamesCount > 0 {
		fmt.Printf("Record: %d/%d (%s)\n", snapshot.BestGame.Correct, snapshot.BestGame.Total,
			snapshot.BestGame.Date.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Average accuracy: %.2f%%\n", snapshot.TotalAccuracy)
	return nil
}
