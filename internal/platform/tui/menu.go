package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fruit-link/internal/core"
	"github.com/vovakirdan/fruit-link/internal/ranking"
)

// MenuChoice is what the player picked on the start menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceSelectLevel
	ChoiceRankings
	ChoiceNickname
	ChoiceQuit
)

// MenuItem is one entry of the start menu.
type MenuItem struct {
	Title  string
	Choice MenuChoice
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// MenuModel is the Bubble Tea model for the start menu. It asks for a
// nickname first unless one is already known.
type MenuModel struct {
	items        []MenuItem
	cursor       int
	width        int
	height       int
	keys         *KeyMap
	input        textinput.Model
	editing      bool // Nickname prompt has focus
	lockNickname bool // Nickname comes from the SSH account
	choice       MenuChoice
	quitting     bool
}

// NewMenuModel creates a new menu model. A locked nickname cannot be
// changed from the menu.
func NewMenuModel(nickname string, lockNickname bool, cfg core.RuntimeConfig) MenuModel {
	ti := textinput.New()
	ti.Placeholder = "nickname"
	ti.CharLimit = ranking.MaxNickname
	ti.Width = ranking.MaxNickname
	ti.SetValue(nickname)

	items := []MenuItem{
		{Title: "Play", Choice: ChoicePlay},
		{Title: "Select Level...", Choice: ChoiceSelectLevel},
		{Title: "Rankings", Choice: ChoiceRankings},
	}
	if !lockNickname {
		items = append(items, MenuItem{Title: "Change Nickname", Choice: ChoiceNickname})
	}
	items = append(items, MenuItem{Title: "Quit", Choice: ChoiceQuit})

	m := MenuModel{
		items:        items,
		width:        cfg.ScreenW,
		height:       cfg.ScreenH,
		keys:         DefaultKeyMap(),
		input:        ti,
		lockNickname: lockNickname,
	}
	if strings.TrimSpace(nickname) == "" && !lockNickname {
		m.editing = true
		m.input.Focus()
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	if m.editing {
		return textinput.Blink
	}
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handlePromptKey edits the nickname. An empty nickname is allowed; runs
// are then kept out of the rankings.
func (m MenuModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter", "esc":
		m.input.SetValue(strings.TrimSpace(m.input.Value()))
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Menu(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		switch choice := m.items[m.cursor].Choice; choice {
		case ChoiceNickname:
			m.editing = true
			return m, m.input.Focus()
		case ChoiceQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.choice = choice
			return m, tea.Quit // Exit menu to run the choice
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		menuTitleStyle.Render("F R U I T L I N K"),
		"Connect matching fruit with at most two turns",
		"",
	}

	if m.editing {
		lines = append(lines,
			"Enter your nickname:",
			"",
			m.input.View(),
			"",
			menuHintStyle.Render("Enter: Confirm  |  Leave empty to play unranked"),
		)
		return m.place(lines)
	}

	player := m.Nickname()
	if player == "" {
		player = "(unranked)"
	}
	lines = append(lines, "Player: "+player, "")

	for i, item := range m.items {
		if i == m.cursor {
			lines = append(lines, menuCursorStyle.Render("> "+item.Title))
			continue
		}
		lines = append(lines, "  "+item.Title)
	}

	lines = append(lines, "", menuHintStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"))
	return m.place(lines)
}

// place centres the menu block horizontally, one line below the top.
func (m MenuModel) place(lines []string) string {
	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, block)
}

// Choice returns what the player picked, ChoiceNone while still choosing.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Nickname returns the entered nickname.
func (m MenuModel) Nickname() string {
	return strings.TrimSpace(m.input.Value())
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}
