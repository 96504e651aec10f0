package core

import (
	"errors"
	"fmt"
)

// ErrInvalidLevel is returned for level numbers below 1.
var ErrInvalidLevel = errors.New("core: level must be at least 1")

// LevelConfig defines the board of one level.
type LevelConfig struct {
	Level     int `json:"level"`
	Cols      int `json:"cols"`
	Rows      int `json:"rows"`
	TileTypes int `json:"tileTypes"`
	TimeLimit int `json:"timeLimit"` // Seconds
}

// Pairs returns the number of tile pairs placed on the board.
func (c LevelConfig) Pairs() int {
	return c.Cols * c.Rows / 2
}

// LevelTable maps level numbers to configurations. Levels past the end of
// the table reuse the last entry with a shrinking time limit.
type LevelTable struct {
	levels   []LevelConfig
	timeStep int // Seconds removed per level past the table
	minTime  int // Floor for overflow time limits
}

// NewLevelTable validates levels (numbered 1..n in order) and returns a table.
func NewLevelTable(levels []LevelConfig, timeStep, minTime int) (*LevelTable, error) {
	if len(levels) == 0 {
		return nil, errors.New("core: level table is empty")
	}
	for i, l := range levels {
		if l.Level != i+1 {
			return nil, fmt.Errorf("core: level table entry %d is numbered %d", i, l.Level)
		}
		if l.Cols < 1 || l.Rows < 1 || l.Cols*l.Rows < 2 {
			return nil, fmt.Errorf("core: level %d has invalid size %dx%d", l.Level, l.Cols, l.Rows)
		}
		if l.TileTypes < 1 {
			return nil, fmt.Errorf("core: level %d needs at least one tile type", l.Level)
		}
		if l.TimeLimit < 1 {
			return nil, fmt.Errorf("core: level %d has no time limit", l.Level)
		}
	}
	t := &LevelTable{
		levels:   make([]LevelConfig, len(levels)),
		timeStep: timeStep,
		minTime:  minTime,
	}
	copy(t.levels, levels)
	return t, nil
}

// DefaultLevelTable returns the built-in ten-level table.
func DefaultLevelTable() *LevelTable {
	t, err := NewLevelTable(DefaultLevels(), 5, 30)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultLevels returns the built-in level list.
func DefaultLevels() []LevelConfig {
	return []LevelConfig{
		{Level: 1, Cols: 6, Rows: 4, TileTypes: 10, TimeLimit: 45},
		{Level: 2, Cols: 6, Rows: 5, TileTypes: 12, TimeLimit: 50},
		{Level: 3, Cols: 7, Rows: 5, TileTypes: 14, TimeLimit: 55},
		{Level: 4, Cols: 7, Rows: 6, TileTypes: 16, TimeLimit: 60},
		{Level: 5, Cols: 8, Rows: 6, TileTypes: 18, TimeLimit: 65},
		{Level: 6, Cols: 8, Rows: 7, TileTypes: 20, TimeLimit: 70},
		{Level: 7, Cols: 9, Rows: 7, TileTypes: 22, TimeLimit: 75},
		{Level: 8, Cols: 9, Rows: 8, TileTypes: 24, TimeLimit: 80},
		{Level: 9, Cols: 10, Rows: 8, TileTypes: 26, TimeLimit: 85},
		{Level: 10, Cols: 10, Rows: 9, TileTypes: 28, TimeLimit: 90},
	}
}

// Config returns the configuration for level.
func (t *LevelTable) Config(level int) (LevelConfig, error) {
	if level < 1 {
		return LevelConfig{}, fmt.Errorf("%w: got %d", ErrInvalidLevel, level)
	}
	if level <= len(t.levels) {
		return t.levels[level-1], nil
	}

	last := t.levels[len(t.levels)-1]
	cfg := last
	cfg.Level = level
	cfg.TimeLimit = max(t.minTime, last.TimeLimit-(level-len(t.levels))*t.timeStep)
	return cfg, nil
}

// Len returns the number of explicit table entries.
func (t *LevelTable) Len() int {
	return len(t.levels)
}

// Levels returns a copy of the explicit table entries.
func (t *LevelTable) Levels() []LevelConfig {
	out := make([]LevelConfig, len(t.levels))
	copy(out, t.levels)
	return out
}

// Scale returns a copy of the table with every time limit multiplied by
// factor, rounded and never below one second.
func (t *LevelTable) Scale(factor float64) *LevelTable {
	out := &LevelTable{
		levels:   t.Levels(),
		timeStep: t.timeStep,
		minTime:  max(1, int(float64(t.minTime)*factor+0.5)),
	}
	for i := range out.levels {
		out.levels[i].TimeLimit = max(1, int(float64(out.levels[i].TimeLimit)*factor+0.5))
	}
	return out
}
