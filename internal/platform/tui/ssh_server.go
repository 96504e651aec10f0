package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/fruit-link/internal/core"
)

const shutdownTimeout = 10 * time.Second

// SSHServerConfig configures terminal play over SSH.
type SSHServerConfig struct {
	Address     string
	HostKeyPath string // Generated on first start; defaults to ~/.fruitlink/host_key
	GameID      string // Variant every session plays
	IdleTimeout time.Duration
	MaxSessions int // 0 means unlimited
}

// DefaultSSHServerConfig returns the settings used by "fruitlink serve".
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		GameID:      "fruitlink",
		IdleTimeout: 30 * time.Minute,
		MaxSessions: 64,
	}
}

// SSHServer serves the FruitLink menu to SSH clients. The SSH user name is
// the player's nickname and cannot be changed from the menu.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	services Services
	logger   *log.Logger
	active   atomic.Int32
}

// NewSSHServer prepares the host key and builds the server.
func NewSSHServer(cfg SSHServerConfig, services Services) (*SSHServer, error) {
	if cfg.GameID == "" {
		cfg.GameID = DefaultSSHServerConfig().GameID
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &SSHServer{
		config:   cfg,
		services: services,
		logger:   services.logger().WithPrefix("ssh"),
	}

	// Middleware runs last to first: logging, admission, PTY check, then the program.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newProgram),
			activeterm.Middleware(),
			s.admit,
			s.logSession,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	s.server = server
	return s, nil
}

// hostKeyPath resolves the host key location and creates its directory.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".fruitlink", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// newProgram builds the session model for a connected terminal.
func (s *SSHServer) newProgram(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	cfg := core.DefaultConfig().Resized(pty.Window.Width, pty.Window.Height)
	cfg.Seed = time.Now().UnixNano()

	model := NewSessionModel(s.services, s.config.GameID, sess.User(), true, cfg)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// acquire reserves a session slot.
func (s *SSHServer) acquire() bool {
	n := s.active.Add(1)
	if s.config.MaxSessions > 0 && int(n) > s.config.MaxSessions {
		s.active.Add(-1)
		return false
	}
	return true
}

func (s *SSHServer) release() {
	s.active.Add(-1)
}

// Active returns the number of sessions currently playing.
func (s *SSHServer) Active() int {
	return int(s.active.Load())
}

// admit turns sessions away once MaxSessions are playing.
func (s *SSHServer) admit(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		if !s.acquire() {
			s.logger.Warn("session refused, server full", "user", sess.User(), "max", s.config.MaxSessions)
			wish.Fatalln(sess, "FruitLink is full right now, try again later.")
			return
		}
		defer s.release()
		next(sess)
	}
}

// logSession logs the start and end of every connection.
func (s *SSHServer) logSession(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		remote := sess.RemoteAddr().String()
		s.logger.Info("session started", "user", sess.User(), "remote", remote)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", remote,
			"duration", time.Since(start).Round(time.Second),
			"active", s.Active(),
		)
	}
}

// Serve accepts connections until ctx is cancelled.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "max_sessions", s.config.MaxSessions)

	errc := make(chan error, 1)
	go func() { errc <- s.server.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown()
	}
}

// Shutdown waits up to ten seconds for open sessions to finish.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
