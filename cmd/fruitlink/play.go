package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fruit-link/internal/core"
	"github.com/vovakirdan/fruit-link/internal/games/fruitlink"
	"github.com/vovakirdan/fruit-link/internal/platform/tui"
	"github.com/vovakirdan/fruit-link/internal/ranking"
	"github.com/vovakirdan/fruit-link/internal/registry"
)

const defaultVariant = "fruitlink"

var (
	flagNickname   string
	flagLevel      int
	flagDifficulty string
	flagAPI        string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a game",
	Long: `Start playing FruitLink right away.

Controls:
  Arrows/WASD  - Move the cursor
  Enter/Space  - Select a fruit
  H            - Hint
  X            - Shuffle
  P            - Pause
  N            - Next level (after clearing the board)
  R            - Retry (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 1.5x time limits
  normal - Default time limits
  hard   - 0.75x time limits
  fixed  - Default time limits, no shrinking past the table

Without --nickname the game is played unranked. With --api the run is
submitted to a remote server instead of the local store.

Examples:
  fruitlink play --nickname alice
  fruitlink play --level 4 --difficulty hard
  fruitlink play fruitlink_easy
  fruitlink play --nickname bob --api http://localhost:8080`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagNickname, "nickname", "", "Nickname for the rankings (empty = unranked)")
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start at")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagAPI, "api", "", "Base URL of a ranking server")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := defaultVariant
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if _, ok := registry.Lookup(gameID); !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'fruitlink list' to see available variants.")
		os.Exit(1)
	}

	setup, err := loadGame(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagLevel < 1 {
		fmt.Fprintln(os.Stderr, "Error: level must be at least 1")
		os.Exit(1)
	}

	nickname, err := playerName(flagNickname)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fruitlink.SetDifficultyPreset(flagDifficulty)
	fruitlink.SetStartLevel(flagLevel)

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	restoreLog := logToFile()
	b, services := openServices(setup)

	// Run the game
	runErr := tui.Run(game, services, nickname, runtimeConfig())

	// Close store before potential exit
	b.Close()
	restoreLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// playerName normalizes an optional nickname. Empty stays empty.
func playerName(nickname string) (string, error) {
	if nickname == "" {
		return "", nil
	}
	return ranking.NormalizeNickname(nickname)
}

// openServices opens the local store, or points ranking at --api. Failing
// to open the store is not fatal; the game still works.
func openServices(setup *gameSetup) (*backend, tui.Services) {
	b, err := openBackend()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open rankings store: %v\n", err)
		b = nil
	}

	services := b.services(setup.levels)
	if flagAPI != "" {
		client := ranking.NewClient(flagAPI)
		services.Rankings = client
		services.Submitter = client
	}
	return b, services
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
