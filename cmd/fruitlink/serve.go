package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-link/internal/api"
	"github.com/vovakirdan/fruit-link/internal/platform/tui"
	"github.com/vovakirdan/fruit-link/internal/transport/websocket"
)

var (
	flagHTTPAddr    string
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the FruitLink servers",
	Long: `Start the ranking HTTP API with browser play over WebSocket, and an
SSH server for terminal play.

HTTP routes:
  GET    /health          - Liveness check
  GET    /api/rankings    - Leaderboard
  POST   /api/score       - Submit a score
  DELETE /api/rankings    - Clear the leaderboard
  GET    /api/levels      - Level table
  GET    /ws/play         - WebSocket play session (?nickname=&level=)

Each SSH connection gets its own session; the SSH user name is the
nickname. All players share the same leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.fruitlink/host_key

Examples:
  fruitlink serve                          # HTTP on :8080, SSH on :23234
  fruitlink serve --http :9000 --ssh ""    # HTTP only
  fruitlink serve --store memory           # Throwaway leaderboard

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (empty disables)")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (empty disables)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", tui.DefaultSSHServerConfig().MaxSessions, "Concurrent SSH sessions (0 = unlimited)")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset for browser play: easy, normal, hard, fixed")
}

func runServe(_ *cobra.Command, _ []string) {
	if flagHTTPAddr == "" && flagSSHAddr == "" {
		fmt.Fprintln(os.Stderr, "Error: nothing to serve, both --http and --ssh are empty")
		os.Exit(1)
	}

	setup, err := loadGame(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	b, err := openBackend()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening rankings store: %v\n", err)
		os.Exit(1)
	}
	defer b.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var servers []func(context.Context) error

	if flagHTTPAddr != "" {
		play := websocket.NewHandler(setup.NewSession, b.rankings, logger.WithPrefix("ws"))
		srv := api.New(b.rankings, setup.levels, play, logger.WithPrefix("http"))
		servers = append(servers, func(ctx context.Context) error {
			return srv.Serve(ctx, flagHTTPAddr)
		})
		fmt.Printf("Ranking API and browser play on %s\n", flagHTTPAddr)
	}

	if flagSSHAddr != "" {
		cfg := tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			GameID:      defaultVariant,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
			MaxSessions: flagMaxSessions,
		}
		sshSrv, sshErr := tui.NewSSHServer(cfg, b.services(setup.levels))
		if sshErr != nil {
			fmt.Fprintf(os.Stderr, "Error creating server: %v\n", sshErr)
			os.Exit(1)
		}
		servers = append(servers, sshSrv.Serve)
		fmt.Printf("SSH play on %s\n", cfg.Address)
		fmt.Println("Connect with: ssh localhost -p <port>")
	}
	fmt.Println("Press Ctrl+C to stop")

	// The first server to fail stops the others
	errc := make(chan error, len(servers))
	for _, serve := range servers {
		go func() {
			errc <- serve(ctx)
		}()
	}

	var failed bool
	for range servers {
		if err := <-errc; err != nil {
			logger.Error("server error", "err", err)
			failed = true
			stop()
		}
	}

	if failed {
		b.Close()
		os.Exit(1)
	}
}
