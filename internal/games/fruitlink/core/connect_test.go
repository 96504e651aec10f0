package core

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestCanConnect(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		p1, p2   Pos
		expected bool
		path     []Pos
	}{
		{
			name:     "adjacent in row",
			rows:     []string{"AA"},
			p1:       P(0, 0),
			p2:       P(0, 1),
			expected: true,
			path:     []Pos{P(0, 0), P(0, 1)},
		},
		{
			name:     "straight over empty cells",
			rows:     []string{"A.A", "BCD"},
			p1:       P(0, 0),
			p2:       P(0, 2),
			expected: true,
			path:     []Pos{P(0, 0), P(0, 2)},
		},
		{
			name:     "straight in column",
			rows:     []string{"AB", ".C", "AD"},
			p1:       P(0, 0),
			p2:       P(2, 0),
			expected: true,
			path:     []Pos{P(0, 0), P(2, 0)},
		},
		{
			name:     "one corner",
			rows:     []string{"A.", "BA"},
			p1:       P(0, 0),
			p2:       P(1, 1),
			expected: true,
			path:     []Pos{P(0, 0), P(0, 1), P(1, 1)},
		},
		{
			name:     "one corner second candidate",
			rows:     []string{"AB", ".A"},
			p1:       P(0, 0),
			p2:       P(1, 1),
			expected: true,
			path:     []Pos{P(0, 0), P(1, 0), P(1, 1)},
		},
		{
			name:     "two corners through row above the board",
			rows:     []string{"ABA", "CDE"},
			p1:       P(0, 0),
			p2:       P(0, 2),
			expected: true,
			path:     []Pos{P(0, 0), P(-1, 0), P(-1, 2), P(0, 2)},
		},
		{
			name:     "two corners through column left of the board",
			rows:     []string{"AB", "CD", "AE"},
			p1:       P(0, 0),
			p2:       P(2, 0),
			expected: true,
			path:     []Pos{P(0, 0), P(0, -1), P(2, -1), P(2, 0)},
		},
		{
			name:     "two corners inside the board",
			rows:     []string{"A.CD", "E.FG", "H..A"},
			p1:       P(0, 0),
			p2:       P(2, 3),
			expected: true,
			path:     []Pos{P(0, 0), P(0, 1), P(2, 1), P(2, 3)},
		},
		{
			name:     "both one-corner candidates blocked",
			rows:     []string{"AB", "CA"},
			p1:       P(0, 0),
			p2:       P(1, 1),
			expected: false,
		},
		{
			name: "walled-off tile",
			rows: []string{
				"CDE",
				"FAG",
				"HIJ",
				"KLM",
				"NAO",
			},
			p1:       P(1, 1),
			p2:       P(4, 1),
			expected: false,
		},
		{
			name:     "same cell",
			rows:     []string{"AA"},
			p1:       P(0, 0),
			p2:       P(0, 0),
			expected: false,
		},
		{
			name:     "endpoint outside board",
			rows:     []string{"AA"},
			p1:       P(0, 0),
			p2:       P(-1, 0),
			expected: false,
		},
		{
			name:     "empty endpoint",
			rows:     []string{"A.", "BC"},
			p1:       P(0, 0),
			p2:       P(0, 1),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := boardFrom(tc.rows...)
			if got := CanConnect(b, tc.p1, tc.p2); got != tc.expected {
				t.Errorf("CanConnect(%v, %v) = %v, expected %v", tc.p1, tc.p2, got, tc.expected)
			}
			if got := CanConnect(b, tc.p2, tc.p1); got != tc.expected {
				t.Errorf("CanConnect(%v, %v) reversed = %v, expected %v", tc.p2, tc.p1, got, tc.expected)
			}
			if len(tc.path) == 0 {
				return
			}
			path, _ := Path(b, tc.p1, tc.p2)
			if !reflect.DeepEqual(path, tc.path) {
				t.Errorf("Path() = %v, expected %v", path, tc.path)
			}
		})
	}
}

func TestPathSegmentsCrossOnlyEmptyCells(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		b := randomBoard(seed)
		for i, ci := range b.Cells {
			if ci.IsEmpty() {
				continue
			}
			for j := i + 1; j < len(b.Cells); j++ {
				if b.Cells[j].IsEmpty() {
					continue
				}
				path, ok := Path(b, PosOf(i, b.Cols), PosOf(j, b.Cols))
				if !ok {
					continue
				}
				if len(path) < 2 || len(path) > 4 {
					t.Fatalf("seed %d: path %v has %d points", seed, path, len(path))
				}
				for k := 1; k < len(path); k++ {
					if !straight(b, path[k-1], path[k]) {
						t.Fatalf("seed %d: segment %v-%v is blocked", seed, path[k-1], path[k])
					}
				}
				for _, c := range path[1 : len(path)-1] {
					if !b.passable(c) {
						t.Fatalf("seed %d: corner %v is occupied", seed, c)
					}
				}
			}
		}
	}
}

func TestCanConnectSymmetric(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		b := randomBoard(seed)
		for i := range b.Cells {
			for j := range b.Cells {
				a, c := PosOf(i, b.Cols), PosOf(j, b.Cols)
				if CanConnect(b, a, c) != CanConnect(b, c, a) {
					t.Fatalf("seed %d: CanConnect(%v, %v) is not symmetric", seed, a, c)
				}
			}
			if CanConnect(b, PosOf(i, b.Cols), PosOf(i, b.Cols)) {
				t.Fatalf("seed %d: cell %d connects to itself", seed, i)
			}
		}
	}
}

func TestFindMatchablePairs(t *testing.T) {
	b := boardFrom(
		"AB.A",
		"CDBE",
	)
	pairs := FindMatchablePairs(b)

	// A links over the top edge, B through the empty corner (0,2).
	want := [][2]int{{0, 3}, {1, 6}}
	if len(pairs) != len(want) {
		t.Fatalf("FindMatchablePairs() found %d pairs, expected %d", len(pairs), len(want))
	}
	for i, p := range pairs {
		if p.Indices() != want[i] {
			t.Errorf("pair %d = %v, expected %v", i, p.Indices(), want[i])
		}
		if p.A.Kind.ID != p.B.Kind.ID {
			t.Errorf("pair %d mixes kinds %q and %q", i, p.A.Kind.ID, p.B.Kind.ID)
		}
	}
	if !HasMatchablePair(b) {
		t.Error("HasMatchablePair() = false, expected true")
	}
}

func TestHasMatchablePairNone(t *testing.T) {
	b := boardFrom(
		"CDE",
		"FAG",
		"HIJ",
		"KLM",
		"NAO",
	)
	if HasMatchablePair(b) {
		t.Error("HasMatchablePair() = true on a walled-off board")
	}
	if got := FindMatchablePairs(b); len(got) != 0 {
		t.Errorf("FindMatchablePairs() = %v, expected none", got)
	}
}

// randomBoard generates a level and clears a random subset of tiles.
func randomBoard(seed int64) *Board {
	g := newTestGenerator(seed)
	layout, err := g.Generate(int(seed%5) + 1)
	if err != nil {
		panic(err)
	}
	b := NewBoard(layout.Cols, layout.Rows, layout.Tiles)
	rng := rand.New(rand.NewSource(seed))
	for _, t := range b.Tiles() {
		if t.PairID%3 == int(rng.Int63()%3) {
			b.Remove(t.Index)
		}
	}
	return b
}
