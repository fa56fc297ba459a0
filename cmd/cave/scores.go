package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cave/internal/platform/desktop"
	"github.com/vovakirdan/tui-cave/internal/registry"
	"github.com/vovakirdan/tui-cave/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best runs",
	Long: `Display the best runs for a mode, "cave" by default.
Windowed runs are stored under "cave_window".

Examples:
  cave scores
  cave scores cave_truce --limit 20
  cave scores cave_window`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "cave"
	if len(args) > 0 {
		gameID = args[0]
	}
	title := "Cave (window)"
	if gameID != desktop.GameID {
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown mode %q, run 'cave list' to see available modes", gameID)
		}
		game, err := registry.Create(gameID)
		if err != nil {
			return err
		}
		title = game.Title()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	runs, err := store.TopRuns(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Best runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'cave play %s' to set the first score!\n", gameID)
		return nil
	}

	printRuns(runs)

	if stats, err := store.Stats(gameID); err == nil && stats != nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Deepest level: %d  Time played: %s\n",
			stats.Runs, stats.BestScore, stats.AvgScore, stats.MaxLevel, stats.TotalTime.Round(time.Second))
	}
	return nil
}

func printRuns(runs []storage.RunRecord) {
	const row = "  %-4v  %-7v  %-3v  %-5v  %-5v  %-6v  %-12v  %s\n"
	fmt.Printf(row, "Rank", "Score", "Lvl", "Kills", "Gold", "Time", "Player", "Date")
	fmt.Printf(row, "----", "-----", "---", "-----", "----", "----", "------", "----")
	for i, r := range runs {
		fmt.Printf(row, i+1, r.Score, r.Level, r.Enemies, r.Gold,
			r.Duration.Round(time.Second), r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
