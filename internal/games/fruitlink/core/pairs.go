package core

// Pair is two same-kind tiles that can currently be linked.
type Pair struct {
	A Tile
	B Tile
}

// Indices returns the board indices of both tiles.
func (p Pair) Indices() [2]int {
	return [2]int{p.A.Index, p.B.Index}
}

// FindMatchablePairs returns every connectable same-kind pair, in scan order
// of the first tile then the second.
func FindMatchablePairs(b *Board) []Pair {
	var out []Pair
	scanPairs(b, func(p Pair) bool {
		out = append(out, p)
		return true
	})
	return out
}

// HasMatchablePair reports whether at least one pair can be matched.
func HasMatchablePair(b *Board) bool {
	found := false
	scanPairs(b, func(Pair) bool {
		found = true
		return false
	})
	return found
}

// scanPairs calls fn for each matchable pair until fn returns false.
func scanPairs(b *Board, fn func(Pair) bool) {
	tiles := b.Tiles()
	for i := 0; i < len(tiles); i++ {
		for j := i + 1; j < len(tiles); j++ {
			if tiles[i].Kind.ID != tiles[j].Kind.ID {
				continue
			}
			if !CanConnect(b, PosOf(tiles[i].Index, b.Cols), PosOf(tiles[j].Index, b.Cols)) {
				continue
			}
			if !fn(Pair{A: tiles[i], B: tiles[j]}) {
				return
			}
		}
	}
}
