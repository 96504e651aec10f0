// Package core provides the core game logic for the FruitLink puzzle.
// This package is UI-agnostic and deterministic: time and randomness are
// injected by the caller.
package core

import "fmt"

// TileKind describes one icon family. Two tiles match when their kinds share an ID.
type TileKind struct {
	ID       string `json:"id"`
	Glyph    string `json:"icon"`            // Rich display symbol (emoji)
	Category string `json:"category"`        // Grouping label, informational only
	Symbol   rune   `json:"-"`               // Single-width terminal symbol
	Color    string `json:"color,omitempty"` // Terminal colour name
}

// Pos is a board coordinate. Row -1 / Rows and Col -1 / Cols address the
// passable ring around the board.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// P is shorthand for constructing a Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// PosOf converts a row-major cell index to a position.
func PosOf(index, cols int) Pos {
	return Pos{Row: index / cols, Col: index % cols}
}

// Index converts the position to a row-major cell index.
func (p Pos) Index(cols int) int {
	return p.Row*cols + p.Col
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Tile is one placed icon. PairID is shared by exactly the two tiles of a pair.
type Tile struct {
	Kind   TileKind `json:"kind"`
	PairID int      `json:"pairId"`
	Index  int      `json:"index"`
}

// Cell is either empty or holds exactly one tile.
type Cell struct {
	tile     Tile
	occupied bool
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// Occupied returns a cell holding t.
func Occupied(t Tile) Cell {
	return Cell{tile: t, occupied: true}
}

// IsEmpty reports whether the cell holds no tile.
func (c Cell) IsEmpty() bool {
	return !c.occupied
}

// Tile returns the cell's tile and whether one is present.
func (c Cell) Tile() (Tile, bool) {
	return c.tile, c.occupied
}

// Phase is the session lifecycle state.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhasePaused
	PhaseCleared
	PhaseGameOver
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseCleared:
		return "cleared"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Outcome is the final result of a game, handed to the scoring collaborator.
// Time is the number of seconds spent on the last level.
type Outcome struct {
	Score int `json:"score"`
	Level int `json:"level"`
	Time  int `json:"time"`
}
