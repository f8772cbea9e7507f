package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aestallon/minesweeper/internal/scoring"
	"github.com/aestallon/minesweeper/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best scores across all players, or one player's recent
games when --player is given.

Examples:
  minesweeper scores
  minesweeper scores --limit 25
  minesweeper scores --player alice
  minesweeper scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", storage.DefaultLimit, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
}

func runScores(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	logger := newLogger(os.Stderr, "minesweeper")

	store, err := openStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(ctx); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		logger.Info("scores cleared", "database", appConfig.Database)
		fmt.Println("All scores cleared.")
		return
	}

	// --player selects one player's history; the config default does not.
	if flagPlayer != "" {
		err = printPlayerScores(ctx, store, appConfig.Player)
	} else {
		err = printTopScores(ctx, store)
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

func printTopScores(ctx context.Context, store storage.Store) error {
	scores, err := store.TopScores(ctx, flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("High Scores")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'minesweeper play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-10s  %-16s  %-8s  %s\n", "Rank", "Player", "Score", "Board", "Time", "Date")
	fmt.Printf("  %-4s  %-12s  %-10s  %-16s  %-8s  %s\n", "----", "------", "-----", "-----", "----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-12s  %-10d  %-16s  %-8s  %s\n",
			i+1, e.Player, e.Score, board(e), seconds(e.DurationMs), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	highest, err := store.HighestScore(ctx)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d\n", highest)
	return nil
}

func printPlayerScores(ctx context.Context, store storage.Store, player string) error {
	history, err := store.PlayerHistory(ctx, player, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Recent games - %s\n", player)
	fmt.Println()

	if len(history) == 0 {
		fmt.Printf("No scores recorded for %s yet.\n", player)
		return nil
	}

	fmt.Printf("  %-10s  %-16s  %-8s  %s\n", "Score", "Board", "Time", "Date")
	fmt.Printf("  %-10s  %-16s  %-8s  %s\n", "-----", "-----", "----", "----")
	for _, e := range history {
		fmt.Printf("  %-10d  %-16s  %-8s  %s\n",
			e.Score, board(e), seconds(e.DurationMs), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.PlayerStats(ctx, player)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Games: %d  Best: %d  Average: %.0f\n", stats.Games, stats.Best, stats.Average)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

// board formats e.g. "8x8/5".
func board(e scoring.Entry) string {
	return fmt.Sprintf("%dx%d/%d", e.Rows, e.Cols, e.Mines)
}

func seconds(ms int64) string {
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}
