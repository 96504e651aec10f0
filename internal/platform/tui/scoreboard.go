package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fruit-link/internal/ranking"
	"github.com/vovakirdan/fruit-link/internal/registry"
)

const (
	maxHistory  = 100
	loadTimeout = 5 * time.Second
)

var (
	boardTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle         = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle   = tabStyle.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true)
	boardFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardNoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	boardHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// scoreKeys are the scoreboard bindings; they double as the help model.
type scoreKeys struct {
	Up, Down   key.Binding
	Next, Prev key.Binding
	Reload     key.Binding
	Back, Quit key.Binding
}

func (k scoreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Reload, k.Back}
}

func (k scoreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Reload, k.Back, k.Quit}}
}

func newScoreKeys() scoreKeys {
	return scoreKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next board")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev board")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// scoreRow is one line of a board, whatever its source.
type scoreRow struct {
	Nickname string
	Score    int
	Level    int
	Time     int
	At       time.Time
}

// board is one tab: the shared leaderboard or the local history of a variant.
type board struct {
	Title string
	load  func(ctx context.Context) ([]scoreRow, error)
}

// boardLoadedMsg carries the rows of board index. seq drops answers to
// superseded loads.
type boardLoadedMsg struct {
	index int
	seq   int
	rows  []scoreRow
	err   error
}

// ScoreboardModel shows the rankings and local history boards. Rows load
// in the background; the player's own entries are highlighted.
type ScoreboardModel struct {
	boards    []board
	current   int
	seq       int
	loading   bool
	rows      []scoreRow
	loadErr   error
	player    string
	table     table.Model
	spinner   spinner.Model
	help      help.Model
	keys      scoreKeys
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel builds the boards the services can fill. player may be
// empty.
func NewScoreboardModel(services Services, player string, width, height int) ScoreboardModel {
	player, _ = ranking.NormalizeNickname(player)
	m := ScoreboardModel{
		boards:  buildBoards(services),
		player:  player,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		keys:    newScoreKeys(),
		width:   width,
		height:  height,
	}
	m.help.Width = width
	m.loading = len(m.boards) > 0
	m.table = m.newTable()
	return m
}

// buildBoards lists the boards the available services can fill.
func buildBoards(services Services) []board {
	var boards []board

	if src := services.Rankings; src != nil {
		boards = append(boards, board{
			Title: "Rankings",
			load: func(ctx context.Context) ([]scoreRow, error) {
				entries, err := src.Rankings(ctx)
				if err != nil {
					return nil, err
				}
				rows := make([]scoreRow, len(entries))
				for i, e := range entries {
					rows[i] = scoreRow{Nickname: e.Nickname, Score: e.Score, Level: e.Level, Time: e.Time, At: e.CreatedAt}
				}
				return rows, nil
			},
		})
	}

	if runs := services.Runs; runs != nil {
		for _, v := range registry.List() {
			gameID := v.ID
			boards = append(boards, board{
				Title: v.Title,
				load: func(context.Context) ([]scoreRow, error) {
					list, err := runs.TopRuns(gameID, maxHistory)
					if err != nil {
						return nil, err
					}
					rows := make([]scoreRow, len(list))
					for i, r := range list {
						rows[i] = scoreRow{Nickname: r.Nickname, Score: r.Score, Level: r.Level, Time: r.Time, At: r.CreatedAt}
					}
					return rows, nil
				},
			})
		}
	}

	return boards
}

func (m ScoreboardModel) newTable() table.Model {
	player := max(8, min(20, m.width-48))
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Player", Width: player},
			{Title: "Score", Width: 7},
			{Title: "Level", Width: 5},
			{Title: "Time", Width: 5},
			{Title: "Date", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(false)
	t.SetStyles(s)
	t.SetRows(m.tableRows())
	return t
}

func (m ScoreboardModel) tableRows() []table.Row {
	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		name := r.Nickname
		switch {
		case name == "":
			name = "-"
		case m.player != "" && name == m.player:
			name = "* " + name
		}
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			name,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Level),
			fmt.Sprintf("%ds", r.Time),
			r.At.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// fetch loads the current board in the background.
func (m ScoreboardModel) fetch() tea.Cmd {
	if len(m.boards) == 0 {
		return nil
	}
	index, seq, b := m.current, m.seq, m.boards[m.current]

	load := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		rows, err := b.load(ctx)
		return boardLoadedMsg{index: index, seq: seq, rows: rows, err: err}
	}
	return tea.Batch(load, m.spinner.Tick)
}

// reload supersedes any load in flight and fetches the current board again.
func (m *ScoreboardModel) reload() tea.Cmd {
	if len(m.boards) == 0 {
		return nil
	}
	m.seq++
	m.loading = true
	return m.fetch()
}

// Init loads the first board.
func (m ScoreboardModel) Init() tea.Cmd {
	return m.fetch()
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		if msg.seq != m.seq || msg.index != m.current {
			return m, nil
		}
		m.loading = false
		m.rows, m.loadErr = msg.rows, msg.err
		m.table.SetRows(m.tableRows())
		m.table.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m ScoreboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.goingBack = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m.switchBoard(1)
	case key.Matches(msg, m.keys.Prev):
		return m.switchBoard(-1)
	case key.Matches(msg, m.keys.Reload):
		cmd := m.reload()
		return m, cmd
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ScoreboardModel) switchBoard(step int) (tea.Model, tea.Cmd) {
	n := len(m.boards)
	if n < 2 {
		return m, nil
	}
	m.current = (m.current + step + n) % n
	m.rows, m.loadErr = nil, nil
	m.table.SetRows(nil)
	cmd := m.reload()
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	parts := []string{boardTitleStyle.Render("RANKINGS")}
	if len(m.boards) > 1 {
		parts = append(parts, m.tabs())
	}
	parts = append(parts,
		boardFrameStyle.Render(m.content()),
		boardHelpStyle.Render(m.help.View(m.keys)),
	)

	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body)
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.boards))
	for i, b := range m.boards {
		style := tabStyle
		if i == m.current {
			style = activeTabStyle
		}
		tabs[i] = style.Render(b.Title)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m ScoreboardModel) content() string {
	switch {
	case len(m.boards) == 0:
		return boardNoticeStyle.Render("No ranking service or score database available.")
	case m.loading:
		return boardNoticeStyle.Render(m.spinner.View() + " Loading " + m.boards[m.current].Title + "...")
	case m.loadErr != nil:
		return boardNoticeStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.rows) == 0:
		return boardNoticeStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// Board returns the title of the board on screen.
func (m ScoreboardModel) Board() string {
	if len(m.boards) == 0 {
		return ""
	}
	return m.boards[m.current].Title
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
