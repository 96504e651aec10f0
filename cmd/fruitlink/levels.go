package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-link/internal/config"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the level table",
	Long: `Display board size, fruit kinds and time limit per level for a
difficulty preset.

Examples:
  fruitlink levels
  fruitlink levels --difficulty hard`,
	Run: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runLevels(_ *cobra.Command, _ []string) {
	setup, err := loadGame(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	preset, _ := config.ParsePreset(flagDifficulty)
	fmt.Printf("Levels (%s)\n", preset)
	fmt.Println()

	fmt.Printf("  %-5s  %-7s  %-11s  %s\n", "Level", "Board", "Fruit kinds", "Time")
	fmt.Printf("  %-5s  %-7s  %-11s  %s\n", "-----", "-----", "-----------", "----")
	for _, lvl := range setup.levels.Levels() {
		board := fmt.Sprintf("%dx%d", lvl.Cols, lvl.Rows)
		fmt.Printf("  %-5d  %-7s  %-11d  %ds\n", lvl.Level, board, lvl.TileTypes, lvl.TimeLimit)
	}

	fmt.Println()
	fmt.Printf("Past level %d the last board repeats with a shorter time limit.\n", setup.levels.Len())
}
