package core

import (
	"math/rand"
	"testing"
)

// boardFrom builds a board from ASCII rows. Each letter is a tile kind,
// '.' is an empty cell. Repeated letters are paired in reading order.
func boardFrom(rows ...string) *Board {
	cols := len(rows[0])
	cells := make([]Cell, 0, cols*len(rows))
	seen := make(map[rune]int)
	for r, line := range rows {
		for c, ch := range line {
			if ch == '.' {
				cells = append(cells, Empty())
				continue
			}
			cells = append(cells, Occupied(Tile{
				Kind:   TileKind{ID: string(ch), Symbol: ch},
				PairID: int(ch)*100 + seen[ch]/2,
				Index:  r*cols + c,
			}))
			seen[ch]++
		}
	}
	return &Board{Cols: cols, Rows: len(rows), Cells: cells}
}

func newTestGenerator(seed int64) *Generator {
	return NewGenerator(DefaultCatalog(), DefaultLevelTable(), rand.New(rand.NewSource(seed)))
}

// newTestSession starts a level-1 game and swaps in the given board.
func newTestSession(t *testing.T, rows ...string) *Session {
	t.Helper()
	s := NewSession(newTestGenerator(1), DefaultRules(), rand.New(rand.NewSource(2)))
	if err := s.StartGame(1); err != nil {
		t.Fatalf("StartGame() error = %v", err)
	}
	if len(rows) > 0 {
		b := boardFrom(rows...)
		s.board = b
		s.totalPairs = b.Remaining() / 2
	}
	return s
}
