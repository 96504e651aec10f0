// Package tui provides the Bubble Tea front end for FruitLink.
// It handles the terminal UI loop, input mapping, menus, the ranking board
// and SSH sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fruit-link/internal/core"
)

// TickMsg drives one game frame.
type TickMsg time.Time

// nextFrame schedules the next TickMsg for cfg's frame rate.
func nextFrame(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(cfg.TickInterval(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
