package core

import "time"

// DefaultTickRate is used when a RuntimeConfig carries no usable tick rate.
const DefaultTickRate = 30

// RuntimeConfig describes the terminal a game is played on.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int   // frames per second
	Seed     int64 // 0 picks a time-based seed in the front end
}

// DefaultConfig returns an 80x24 terminal at the default tick rate.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: DefaultTickRate}
}

// Resized returns a copy of c for a terminal of w x h cells.
func (c RuntimeConfig) Resized(w, h int) RuntimeConfig {
	c.ScreenW, c.ScreenH = w, h
	return c
}

// TickInterval is the wall-clock time between two frames.
func (c RuntimeConfig) TickInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}

// GameState is the summary a game reports to the front end after each frame.
type GameState struct {
	Score    int
	Level    int // 1-based
	Time     int // seconds spent on the current level
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}
