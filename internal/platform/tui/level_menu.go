package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	fruitcore "github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
)

var (
	levelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).MarginBottom(1)
	levelHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// LevelSelectModel lists the level table and lets the player pick where
// to start.
type LevelSelectModel struct {
	table    table.Model
	levels   []fruitcore.LevelConfig
	width    int
	height   int
	keys     *KeyMap
	selected int // 0 while choosing
	quitting bool
	back     bool
}

// NewLevelSelectModel builds the picker for the given levels.
func NewLevelSelectModel(levels []fruitcore.LevelConfig, width, height int) LevelSelectModel {
	rows := make([]table.Row, len(levels))
	for i, lvl := range levels {
		rows[i] = table.Row{
			strconv.Itoa(lvl.Level),
			fmt.Sprintf("%dx%d", lvl.Cols, lvl.Rows),
			strconv.Itoa(lvl.TileTypes),
			fmt.Sprintf("%ds", lvl.TimeLimit),
		}
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Level", Width: 5},
			{Title: "Board", Width: 7},
			{Title: "Fruit", Width: 5},
			{Title: "Time", Width: 6},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows), max(3, height-8))),
	)
	styles := table.DefaultStyles()
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return LevelSelectModel{
		table:  t,
		levels: levels,
		width:  width,
		height: height,
		keys:   DefaultKeyMap(),
	}
}

func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(min(len(m.levels), max(3, m.height-8)))
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Menu(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.table.MoveUp(1)
	case MenuActionDown:
		m.table.MoveDown(1)
	case MenuActionSelect:
		if i := m.table.Cursor(); i >= 0 && i < len(m.levels) {
			m.selected = m.levels[i].Level
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the level table.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		levelTitleStyle.Render("SELECT LEVEL"),
		m.table.View(),
		levelHelpStyle.Render("Enter: Start here  |  Esc: Back  |  Q: Quit"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// Selected returns the chosen level, or 0 if none was chosen.
func (m LevelSelectModel) Selected() int {
	return m.selected
}

func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack reports whether the player backed out to the menu.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}
