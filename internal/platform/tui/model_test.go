package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruit-link/internal/core"
	fruitcore "github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
	"github.com/vovakirdan/fruit-link/internal/registry"
	"github.com/vovakirdan/fruit-link/internal/storage"
)

const fakeGameID = "tui_fake"

// lastFake is the most recent game built by the registry factory.
var lastFake *fakeGame

func init() {
	registry.Register(registry.Variant{
		ID:    fakeGameID,
		Title: "Fake",
		New: func() registry.Game {
			lastFake = &fakeGame{}
			return lastFake
		},
	})
}

type fakeGame struct {
	state   core.GameState
	rank    string
	resets  int
	startAt int
}

func (g *fakeGame) ID() string    { return fakeGameID }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{Level: 1}
}

func (g *fakeGame) Step(core.InputFrame) core.StepResult {
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake board") }
func (g *fakeGame) State() core.GameState   { return g.state }
func (g *fakeGame) SetRank(rank string)     { g.rank = rank }
func (g *fakeGame) StartAt(level int)       { g.startAt = level }

type fakeSubmitter struct {
	rank  int
	ok    bool
	err   error
	calls int
}

func (s *fakeSubmitter) Submit(context.Context, string, fruitcore.Outcome) (int, bool, error) {
	s.calls++
	return s.rank, s.ok, s.err
}

type fakeRuns struct {
	saved []fruitcore.Outcome
}

func (r *fakeRuns) SaveRun(_, _ string, out fruitcore.Outcome) (int64, error) {
	r.saved = append(r.saved, out)
	return int64(len(r.saved)), nil
}

func (r *fakeRuns) TopRuns(string, int) ([]storage.Run, error) {
	return nil, nil
}

func testServices() Services {
	return Services{Logger: log.New(io.Discard)}
}

func newTestModel(game *fakeGame, services Services, nickname string) Model {
	m := NewModel(game, services, nickname, core.DefaultConfig())
	m.Init()
	return m
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg{})
	return next.(Model)
}

func TestRecordRunUnranked(t *testing.T) {
	tests := []struct {
		name      string
		submitter *fakeSubmitter
		nickname  string
	}{
		{"no submitter", nil, "alice"},
		{"no nickname", &fakeSubmitter{rank: 1, ok: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := &fakeGame{}
			services := testServices()
			if tt.submitter != nil {
				services.Submitter = tt.submitter
			}
			m := newTestModel(game, services, tt.nickname)
			game.state = core.GameState{Score: 50, Level: 2, GameOver: true}
			m = tick(t, m)

			if m.recordRun() != nil {
				t.Error("expected no submission command")
			}
			if game.rank != "-" {
				t.Errorf("rank = %q, want %q", game.rank, "-")
			}
			if tt.submitter != nil && tt.submitter.calls != 0 {
				t.Errorf("submitter called %d times", tt.submitter.calls)
			}
		})
	}
}

func TestRecordRunSubmits(t *testing.T) {
	game := &fakeGame{}
	sub := &fakeSubmitter{rank: 2, ok: true}
	runs := &fakeRuns{}
	services := testServices()
	services.Submitter = sub
	services.Runs = runs

	m := newTestModel(game, services, "alice")
	game.state = core.GameState{Score: 120, Level: 3, Time: 40, GameOver: true}
	m.gameState = game.state

	cmd := m.recordRun()
	if cmd == nil {
		t.Fatal("expected submission command")
	}
	if len(runs.saved) != 1 || runs.saved[0].Score != 120 {
		t.Errorf("saved runs = %+v", runs.saved)
	}

	m.Update(cmd())
	if sub.calls != 1 {
		t.Errorf("submitter called %d times, want 1", sub.calls)
	}
	if game.rank != "2" {
		t.Errorf("rank = %q, want %q", game.rank, "2")
	}
}

func TestRecordRunSkipsZeroScore(t *testing.T) {
	game := &fakeGame{}
	runs := &fakeRuns{}
	services := testServices()
	services.Runs = runs

	m := newTestModel(game, services, "alice")
	m.gameState = core.GameState{GameOver: true}
	m.recordRun()

	if len(runs.saved) != 0 {
		t.Errorf("zero score run saved: %+v", runs.saved)
	}
}

func TestHandleRank(t *testing.T) {
	tests := []struct {
		name string
		msg  rankMsg
		want string
	}{
		{"ranked", rankMsg{rank: 4, ok: true}, "4"},
		{"off the board", rankMsg{ok: false}, "-"},
		{"error", rankMsg{rank: 1, ok: true, err: errors.New("offline")}, "-"},
		{"stale run", rankMsg{run: 7, rank: 1, ok: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := &fakeGame{}
			m := newTestModel(game, testServices(), "alice")
			m.Update(tt.msg)
			if game.rank != tt.want {
				t.Errorf("rank = %q, want %q", game.rank, tt.want)
			}
		})
	}
}

func TestGameOverRecordedOnce(t *testing.T) {
	game := &fakeGame{}
	runs := &fakeRuns{}
	services := testServices()
	services.Runs = runs

	m := newTestModel(game, services, "")
	game.state = core.GameState{Score: 10, Level: 1, GameOver: true}
	for range 3 {
		m = tick(t, m)
	}

	if len(runs.saved) != 1 {
		t.Errorf("saved %d runs, want 1", len(runs.saved))
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	game := &fakeGame{}
	m := newTestModel(game, testServices(), "")
	game.state = core.GameState{Score: 10, GameOver: true}
	m = tick(t, m)

	next, _ := m.Update(runeKey('r'))
	m = tick(t, next.(Model))

	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if m.run != 1 {
		t.Errorf("run = %d, want 1", m.run)
	}
	if m.scoreSaved {
		t.Error("scoreSaved not cleared on restart")
	}
}

func TestBackToMenu(t *testing.T) {
	game := &fakeGame{}
	m := newTestModel(game, testServices(), "")

	// Back is ignored while playing
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(Model).BackToMenu() {
		t.Fatal("back accepted while playing")
	}

	game.state = core.GameState{GameOver: true}
	m = tick(t, m)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).BackToMenu() {
		t.Error("back not accepted after game over")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(&fakeGame{}, testServices(), "")
	if !strings.Contains(m.View(), "fake board") {
		t.Error("view does not contain the game render")
	}

	next, _ := m.Update(runeKey('q'))
	m = next.(Model)
	if !m.IsQuitting() || m.View() != "" {
		t.Error("quit did not clear the view")
	}
}
