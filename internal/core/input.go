package core

import "strings"

// Action is a player intent, independent of the key that produced it.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm // select the tile under the cursor
	ActionHint
	ActionShuffle
	ActionNext // continue after a cleared level
	ActionBack // leave a finished or paused game
	ActionRestart
	ActionQuit
	ActionPause

	actionCount
)

var actionNames = [actionCount]string{
	"none", "up", "down", "left", "right", "confirm", "hint",
	"shuffle", "next", "back", "restart", "quit", "pause",
}

func (a Action) String() string {
	if a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions pressed during one frame. The zero value
// is an empty frame.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set presses a.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << a
}

// Has reports whether a was pressed.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.bits&(1<<a) != 0
}

func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear releases every action.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// String lists the pressed actions, e.g. "up+confirm".
func (f InputFrame) String() string {
	var names []string
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			names = append(names, a.String())
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}
