package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fruit-link/internal/core"
	fruitcore "github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
	"github.com/vovakirdan/fruit-link/internal/ranking"
	"github.com/vovakirdan/fruit-link/internal/registry"
)

const submitTimeout = 5 * time.Second

// rankMsg carries the result of an asynchronous score submission.
type rankMsg struct {
	run  int
	rank int
	ok   bool
	err  error
}

// Model runs one game at a fixed frame rate, records finished runs and
// shows their ranking.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	services   Services
	nickname   string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       *KeyMap
	run        int // Incremented on every restart so stale ranks are dropped
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the run has been recorded for current game over
}

// NewModel wraps game for the given player. An empty nickname plays unranked.
func NewModel(game registry.Game, services Services, nickname string, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		services:   services,
		nickname:   nickname,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
	}
}

// Init starts the first game. State is picked up on the first frame.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return nextFrame(m.config)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case rankMsg:
		return m.handleRank(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		path, err := m.saveScreenshot()
		if err != nil {
			m.services.logger().Warn("screenshot failed", "err", err)
		} else {
			m.services.logger().Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	if m.keys.Press(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. The board keeps its state;
// the game re-checks whether it still fits on the next step.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config = m.config.Resized(msg.Width, msg.Height)
	m.screen.Resize(msg.Width, msg.Height)
	if r, ok := m.game.(interface{ Resize(w, h int) }); ok {
		r.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleTick steps the game with the keys pressed since the last frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	in := m.inputFrame
	m.inputFrame.Clear()

	if in.Has(core.ActionRestart) && m.gameState.GameOver {
		m.restart()
		return m, nextFrame(m.config)
	}

	m.gameState = m.game.Step(in).State

	var record tea.Cmd
	if m.gameState.GameOver && !m.scoreSaved {
		m.scoreSaved = true
		record = m.recordRun()
	}
	return m, tea.Batch(nextFrame(m.config), record)
}

// restart begins a new game with a fresh seed. Ranks still in flight for
// the previous run are dropped.
func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.run++
}

// recordRun saves the run locally and returns a command submitting it to
// the ranking service, or nil when the run cannot be ranked.
func (m Model) recordRun() tea.Cmd {
	out := fruitcore.Outcome{
		Score: m.gameState.Score,
		Level: m.gameState.Level,
		Time:  m.gameState.Time,
	}

	if m.services.Runs != nil && out.Score > 0 {
		if _, err := m.services.Runs.SaveRun(m.game.ID(), m.nickname, out); err != nil {
			m.services.logger().Warn("could not save run", "game", m.game.ID(), "err", err)
		}
	}

	if m.services.Submitter == nil || m.nickname == "" {
		m.setRank(0, false)
		return nil
	}

	submitter, nickname, run := m.services.Submitter, m.nickname, m.run
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		rank, ok, err := submitter.Submit(ctx, nickname, out)
		return rankMsg{run: run, rank: rank, ok: ok, err: err}
	}
}

func (m Model) handleRank(msg rankMsg) (tea.Model, tea.Cmd) {
	if msg.run != m.run {
		return m, nil
	}
	if msg.err != nil {
		m.services.logger().Warn("score submission failed", "nickname", m.nickname, "err", msg.err)
		m.setRank(0, false)
		return m, nil
	}
	m.setRank(msg.rank, msg.ok)
	return m, nil
}

// setRank passes the ranking position to games that display it.
func (m Model) setRank(rank int, ok bool) {
	if g, isRankAware := m.game.(registry.RankAware); isRankAware {
		g.SetRank(ranking.FormatRank(rank, ok))
	}
}

// saveScreenshot writes the plain-text board to ~/.fruitlink/screenshots.
func (m Model) saveScreenshot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".fruitlink", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	m.game.Render(m.screen)
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405")))
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game full-screen until the player quits.
func Run(game registry.Game, services Services, nickname string, cfg core.RuntimeConfig) error {
	_, err := tea.NewProgram(NewModel(game, services, nickname, cfg), tea.WithAltScreen()).Run()
	return err
}
