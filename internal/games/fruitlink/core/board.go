package core

import (
	"fmt"
	"math/rand"
)

// Board is the playing field. Cells are stored in row-major order:
// index = row*Cols + col.
type Board struct {
	Cols    int
	Rows    int
	Cells   []Cell
	Version uint64 // Incremented on every mutation
}

// NewBoard lays tiles out row-major on a cols x rows board. Tile.Index is
// rewritten to the tile's position. Cells past len(tiles) stay empty.
func NewBoard(cols, rows int, tiles []Tile) *Board {
	b := &Board{
		Cols:  cols,
		Rows:  rows,
		Cells: make([]Cell, cols*rows),
	}
	for i, t := range tiles {
		if i >= len(b.Cells) {
			break
		}
		t.Index = i
		b.Cells[i] = Occupied(t)
	}
	return b
}

// InBounds returns true if the position lies on the board proper.
func (b *Board) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < b.Rows && p.Col >= 0 && p.Col < b.Cols
}

// At returns the cell at p. Positions off the board read as empty.
func (b *Board) At(p Pos) Cell {
	if !b.InBounds(p) {
		return Empty()
	}
	return b.Cells[p.Index(b.Cols)]
}

// passable reports whether a path may cross p.
func (b *Board) passable(p Pos) bool {
	return b.At(p).IsEmpty()
}

// Remove empties the given cells as one mutation.
func (b *Board) Remove(indices ...int) {
	for _, i := range indices {
		if i >= 0 && i < len(b.Cells) {
			b.Cells[i] = Empty()
		}
	}
	b.Version++
}

// Remaining returns the number of occupied cells.
func (b *Board) Remaining() int {
	n := 0
	for _, c := range b.Cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// Tiles returns the occupied tiles in index order.
func (b *Board) Tiles() []Tile {
	out := make([]Tile, 0, len(b.Cells))
	for _, c := range b.Cells {
		if t, ok := c.Tile(); ok {
			out = append(out, t)
		}
	}
	return out
}

// Reshuffle permutes the remaining tiles over the currently occupied
// positions. Empty cells stay empty.
func (b *Board) Reshuffle(rng *rand.Rand) {
	tiles := b.Tiles()
	Shuffle(rng, tiles)

	k := 0
	for i, c := range b.Cells {
		if c.IsEmpty() {
			continue
		}
		t := tiles[k]
		t.Index = i
		b.Cells[i] = Occupied(t)
		k++
	}
	b.Version++
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.Cells))
	copy(cells, b.Cells)
	return &Board{
		Cols:    b.Cols,
		Rows:    b.Rows,
		Cells:   cells,
		Version: b.Version,
	}
}

// Validate checks the pair invariant: every pair ID occurs on 0 or 2
// occupied cells, both of the same kind, and Tile.Index matches the position.
func (b *Board) Validate() error {
	if len(b.Cells) != b.Cols*b.Rows {
		return fmt.Errorf("core: board has %d cells, want %d", len(b.Cells), b.Cols*b.Rows)
	}
	count := make(map[int]int)
	kind := make(map[int]string)
	for i, c := range b.Cells {
		t, ok := c.Tile()
		if !ok {
			continue
		}
		if t.Index != i {
			return fmt.Errorf("core: tile at %d reports index %d", i, t.Index)
		}
		count[t.PairID]++
		if id, seen := kind[t.PairID]; seen && id != t.Kind.ID {
			return fmt.Errorf("core: pair %d mixes kinds %q and %q", t.PairID, id, t.Kind.ID)
		}
		kind[t.PairID] = t.Kind.ID
	}
	for id, n := range count {
		if n != 2 {
			return fmt.Errorf("core: pair %d has %d tiles on board", id, n)
		}
	}
	return nil
}

// String renders the board using kind symbols, '.' for empty cells.
func (b *Board) String() string {
	buf := make([]rune, 0, (b.Cols+1)*b.Rows)
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if t, ok := b.At(P(r, c)).Tile(); ok {
				buf = append(buf, t.Kind.Symbol)
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
