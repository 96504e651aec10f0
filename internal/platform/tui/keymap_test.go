package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fruit-link/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"w", runeKey('w'), core.ActionUp},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{"a", runeKey('a'), core.ActionLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionConfirm},
		{"hint", runeKey('h'), core.ActionHint},
		{"shuffle", runeKey('x'), core.ActionShuffle},
		{"next", runeKey('n'), core.ActionNext},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{"pause", runeKey('p'), core.ActionPause},
		{"restart", runeKey('r'), core.ActionRestart},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('z'), core.ActionNone},
		// Menu-only bindings do nothing on the board
		{"k", runeKey('k'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.Action(tt.msg); got != tt.want {
				t.Errorf("Action() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyMapPress(t *testing.T) {
	km := DefaultKeyMap()
	frame := core.NewInputFrame()

	if km.Press(runeKey('h'), &frame) {
		t.Fatal("hint reported as quit")
	}
	if !frame.Has(core.ActionHint) {
		t.Error("frame missing hint action")
	}

	if !km.Press(runeKey('q'), &frame) {
		t.Error("q not reported as quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit pressed into the frame")
	}
}

func TestKeyMapMenu(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want MenuAction
	}{
		{"k", runeKey('k'), MenuActionUp},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{"j", runeKey('j'), MenuActionDown},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{"b", runeKey('b'), MenuActionBack},
		{"q", runeKey('q'), MenuActionQuit},
		{"other", runeKey('z'), MenuActionNone},
		{"hint key", runeKey('h'), MenuActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.Menu(tt.msg); got != tt.want {
				t.Errorf("Menu() = %v, want %v", got, tt.want)
			}
		})
	}
}
