package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	// Register the game variants
	_ "github.com/vovakirdan/fruit-link/internal/games/fruitlink"
	"github.com/vovakirdan/fruit-link/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game variants",
	Long:  `Shows every registered FruitLink variant and its difficulty.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	variants := registry.List()
	if len(variants) == 0 {
		fmt.Println("No variants registered.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tTitle\tDifficulty")
	fmt.Fprintln(w, "  --\t-----\t----------")
	for _, v := range variants {
		difficulty := v.Difficulty
		if difficulty == "" {
			difficulty = "--difficulty (default normal)"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", v.ID, v.Title, difficulty)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Run 'fruitlink play <id>' to play a variant.")
}
