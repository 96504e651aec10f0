// fruitlink is a connect-two fruit matching puzzle for the terminal.
//
// Usage:
//
//	fruitlink list             - List game variants
//	fruitlink play [variant]   - Play a game directly
//	fruitlink menu             - Start menu with level select and rankings
//	fruitlink serve            - Serve the ranking API, browser play and SSH play
//	fruitlink scores           - Show the rankings
//	fruitlink levels           - Show the level table
//	fruitlink config           - Print the effective game configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path>         - Set database path (default: ~/.fruitlink/fruitlink.db)
//	--store <kind>      - Ranking store: sqlite, file or memory
//	--config <path>     - Custom game config YAML
//	--log-level <lvl>   - debug, info, warn or error
//
// Every flag can also be set as FRUITLINK_<FLAG> in the environment or in
// a .env file, e.g. FRUITLINK_DB or FRUITLINK_LOG_LEVEL.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vovakirdan/fruit-link/internal/games/fruitlink"
)

const envPrefix = "FRUITLINK_"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagStore    string
	flagConfig   string
	flagLogLevel string

	logger = log.Default()
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fruitlink",
	Short: "FruitLink - connect matching fruit in your terminal",
	Long: `FruitLink is a timed tile-matching puzzle. Connect two identical fruit
with a path of at most three straight segments before the clock runs out.

Available commands:
  list     - Show the game variants
  play     - Play a game directly
  menu     - Interactive menu with level select and rankings
  serve    - Start the ranking API, browser play and SSH servers
  scores   - View the rankings
  levels   - View the level table
  config   - Print the effective game configuration

Examples:
  fruitlink play --nickname alice
  fruitlink play fruitlink_hard --level 3
  fruitlink menu
  fruitlink serve --http :8080 --ssh :2222
  fruitlink scores --limit 20`,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fruitlink/fruitlink.db", "Path to the rankings database")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "sqlite", "Ranking store: sqlite, file or memory")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(configCmd)
}

// setup applies environment overrides and builds the shared logger.
func setup(cmd *cobra.Command, _ []string) error {
	applyEnv(cmd.Flags())

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "fruitlink",
	})

	fruitlink.SetConfigPath(flagConfig)
	return nil
}

// applyEnv fills every flag not given on the command line from its
// FRUITLINK_* environment variable.
func applyEnv(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		name := envPrefix + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		v, ok := os.LookupEnv(name)
		if !ok {
			return
		}
		if err := f.Value.Set(v); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: ignoring %s: %v\n", name, err)
		}
	})
}

// logToFile sends log output next to the database while a full-screen
// program owns the terminal. The returned func restores stderr.
func logToFile() func() {
	path := filepath.Join(filepath.Dir(expandHome(flagDBPath)), "fruitlink.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}

	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
