package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-link/internal/games/fruitlink"
	"github.com/vovakirdan/fruit-link/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive menu",
	Long: `Open the start menu. It asks for a nickname, then offers Play,
level selection, the rankings and the local game history.

Examples:
  fruitlink menu
  fruitlink menu --nickname alice --difficulty easy
  fruitlink menu --api http://localhost:8080`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagNickname, "nickname", "", "Nickname (asked for when empty)")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	menuCmd.Flags().StringVar(&flagAPI, "api", "", "Base URL of a ranking server")
}

func runMenu(_ *cobra.Command, _ []string) {
	setup, err := loadGame(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	nickname, err := playerName(flagNickname)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fruitlink.SetDifficultyPreset(flagDifficulty)

	restoreLog := logToFile()
	b, services := openServices(setup)

	runErr := tui.RunSession(services, defaultVariant, nickname, runtimeConfig())

	b.Close()
	restoreLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
