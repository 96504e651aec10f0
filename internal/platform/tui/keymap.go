package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fruit-link/internal/core"
)

// actionBinding ties a key binding to the game action it presses.
type actionBinding struct {
	binding key.Binding
	action  core.Action
}

// menuBinding ties a key binding to a menu action.
type menuBinding struct {
	binding key.Binding
	action  MenuAction
}

// MenuAction is a navigation step on the menu screens.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// KeyMap holds the key bindings of the board and the menu screens.
type KeyMap struct {
	Quit       key.Binding
	Screenshot key.Binding
	game       []actionBinding
	menu       []menuBinding
}

// DefaultKeyMap returns the standard FruitLink bindings.
func DefaultKeyMap() *KeyMap {
	bind := func(help string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help))
	}
	back := bind("back", "esc", "b")

	return &KeyMap{
		Quit:       bind("quit", "q", "ctrl+c"),
		Screenshot: bind("screenshot", "ctrl+s"),
		game: []actionBinding{
			{bind("up", "up", "w"), core.ActionUp},
			{bind("down", "down", "s"), core.ActionDown},
			{bind("left", "left", "a"), core.ActionLeft},
			{bind("right", "right", "d"), core.ActionRight},
			{bind("select", "enter", " "), core.ActionConfirm},
			{bind("hint", "h"), core.ActionHint},
			{bind("shuffle", "x"), core.ActionShuffle},
			{bind("next level", "n"), core.ActionNext},
			{bind("pause", "p"), core.ActionPause},
			{bind("restart", "r"), core.ActionRestart},
			{back, core.ActionBack},
		},
		menu: []menuBinding{
			{bind("up", "up", "w", "k"), MenuActionUp},
			{bind("down", "down", "s", "j"), MenuActionDown},
			{bind("select", "enter", " "), MenuActionSelect},
			{back, MenuActionBack},
		},
	}
}

// Action returns the game action bound to msg, ActionQuit for the quit
// keys and ActionNone for anything unbound.
func (km *KeyMap) Action(msg tea.KeyMsg) core.Action {
	if key.Matches(msg, km.Quit) {
		return core.ActionQuit
	}
	for _, b := range km.game {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return core.ActionNone
}

// Press records the action bound to msg in frame and reports whether msg
// asks to quit.
func (km *KeyMap) Press(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action := km.Action(msg)
	if action == core.ActionQuit {
		return true
	}
	if action != core.ActionNone {
		frame.Set(action)
	}
	return false
}

// Menu returns the menu action bound to msg.
func (km *KeyMap) Menu(msg tea.KeyMsg) MenuAction {
	if key.Matches(msg, km.Quit) {
		return MenuActionQuit
	}
	for _, b := range km.menu {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return MenuActionNone
}
