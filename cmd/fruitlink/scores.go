package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-link/internal/ranking"
	"github.com/vovakirdan/fruit-link/internal/registry"
)

var (
	flagLimit   int
	flagHistory bool
	flagReset   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the rankings",
	Long: `Display the leaderboard.

With --api the leaderboard is read from a remote server. With --history
the local game history of every variant is shown as well (sqlite store
only). --reset clears the leaderboard and the local history.

Examples:
  fruitlink scores
  fruitlink scores --limit 20 --history
  fruitlink scores --api http://localhost:8080`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagHistory, "history", false, "Show the local game history")
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Clear the leaderboard and history")
	scoresCmd.Flags().StringVar(&flagAPI, "api", "", "Base URL of a ranking server")
}

func runScores(_ *cobra.Command, _ []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if flagAPI != "" {
		if flagReset || flagHistory {
			fmt.Fprintln(os.Stderr, "Error: --reset and --history need a local store")
			os.Exit(1)
		}
		entries, err := ranking.NewClient(flagAPI).Rankings(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving rankings: %v\n", err)
			os.Exit(1)
		}
		printRankings(entries)
		return
	}

	b, err := openBackend()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening rankings store: %v\n", err)
		os.Exit(1)
	}
	defer b.Close()

	if flagReset {
		if err := resetAll(ctx, b); err != nil {
			b.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Rankings cleared.")
		return
	}

	entries, err := b.rankings.Rankings(ctx)
	if err != nil {
		b.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving rankings: %v\n", err)
		os.Exit(1)
	}
	printRankings(entries)

	if flagHistory {
		printHistory(b)
	}
}

func resetAll(ctx context.Context, b *backend) error {
	if err := b.rankings.Reset(ctx); err != nil {
		return err
	}
	if b.db == nil {
		return nil
	}
	for _, g := range registry.List() {
		if err := b.db.ClearRuns(g.ID); err != nil {
			return err
		}
	}
	return nil
}

func printRankings(entries []ranking.Entry) {
	fmt.Println("Rankings")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'fruitlink play --nickname <name>' to set the first score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-20s  %-8s  %-5s  %-5s  %s\n", "Rank", "Player", "Score", "Level", "Time", "Date")
	fmt.Printf("  %-4s  %-20s  %-8s  %-5s  %-5s  %s\n", "----", "------", "-----", "-----", "----", "----")

	for i, e := range entries {
		if i >= flagLimit {
			break
		}
		dateStr := e.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-20s  %-8d  %-5d  %-5s  %s\n",
			i+1, e.Nickname, e.Score, e.Level, fmt.Sprintf("%ds", e.Time), dateStr)
	}
}

func printHistory(b *backend) {
	if b.db == nil {
		fmt.Println()
		fmt.Println("Local history needs the sqlite store.")
		return
	}

	for _, g := range registry.List() {
		stats, err := b.db.Stats(g.ID)
		if err != nil || stats.GamesCount == 0 {
			continue
		}

		fmt.Println()
		fmt.Printf("History - %s\n", g.Title)
		fmt.Printf("  Games: %d  Best: %d  Best level: %d  Average: %.0f  Last played: %s\n",
			stats.GamesCount, stats.HighScore, stats.BestLevel, stats.AvgScore,
			stats.LastPlayed.Local().Format("2006-01-02 15:04"))

		runs, err := b.db.TopRuns(g.ID, flagLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
			continue
		}
		for i, r := range runs {
			name := r.Nickname
			if name == "" {
				name = "-"
			}
			fmt.Printf("  %-4d  %-20s  %-8d  level %-3d  %s\n",
				i+1, name, r.Score, r.Level, r.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
	}
}
