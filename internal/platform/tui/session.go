package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fruit-link/internal/core"
	"github.com/vovakirdan/fruit-link/internal/registry"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenLevels
	screenScores
	screenGame
)

// levelStarter is implemented by games that can begin at a chosen level.
type levelStarter interface {
	StartAt(level int)
}

// SessionModel manages the full flow: menu -> level select / rankings ->
// game -> menu. It runs local menu sessions and every SSH session.
type SessionModel struct {
	services     Services
	config       core.RuntimeConfig
	gameID       string
	nickname     string
	lockNickname bool
	screen       sessionScreen
	menu         MenuModel
	levels       LevelSelectModel
	scores       ScoreboardModel
	game         *Model
	quitting     bool
}

// NewSessionModel creates a new session model for the given game variant.
func NewSessionModel(services Services, gameID, nickname string, lockNickname bool, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		services:     services,
		config:       cfg,
		gameID:       gameID,
		nickname:     nickname,
		lockNickname: lockNickname,
		menu:         NewMenuModel(nickname, lockNickname, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config = m.config.Resized(wsm.Width, wsm.Height)
	}

	switch m.screen {
	case screenLevels:
		return m.updateLevels(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenGame:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode. Commands from a finished
// sub-screen are dropped since they only ask the program to exit.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}
	m.nickname = m.menu.Nickname()

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Choice() {
	case ChoicePlay:
		return m.startGame(0)
	case ChoiceSelectLevel:
		m.levels = NewLevelSelectModel(m.services.Levels, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenLevels
		return m, m.levels.Init()
	case ChoiceRankings:
		m.scores = NewScoreboardModel(m.services, m.nickname, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()
	}

	return m, cmd
}

func (m SessionModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.levels.Update(msg)
	if levels, ok := newModel.(LevelSelectModel); ok {
		m.levels = levels
	}

	switch {
	case m.levels.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.levels.WantsBack():
		return m.toMenu()
	case m.levels.Selected() > 0:
		return m.startGame(m.levels.Selected())
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if scores, ok := newModel.(ScoreboardModel); ok {
		m.scores = scores
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		return m.toMenu()
	}
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// startGame creates the game and switches to it. level 0 starts at level 1.
func (m SessionModel) startGame(level int) (tea.Model, tea.Cmd) {
	game, err := registry.Create(m.gameID)
	if err != nil {
		m.services.logger().Error("cannot create game", "game", m.gameID, "err", err)
		return m.toMenu()
	}
	if s, ok := game.(levelStarter); ok && level > 0 {
		s.StartAt(level)
	}

	m.config.Seed = time.Now().UnixNano()
	gameModel := NewModel(game, m.services, m.nickname, m.config)
	m.game = &gameModel
	m.screen = screenGame

	return m, m.game.Init()
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.game = nil
	m.menu = NewMenuModel(m.nickname, m.lockNickname, m.config)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenLevels:
		return m.levels.View()
	case screenScores:
		return m.scores.View()
	case screenGame:
		return m.game.View()
	default:
		return m.menu.View()
	}
}

// Nickname returns the nickname currently in use.
func (m SessionModel) Nickname() string {
	return m.nickname
}

// RunSession runs an interactive menu session in the local terminal.
func RunSession(services Services, gameID, nickname string, cfg core.RuntimeConfig) error {
	model := NewSessionModel(services, gameID, nickname, false, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
