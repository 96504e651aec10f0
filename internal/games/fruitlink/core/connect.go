package core

// CanConnect reports whether the tiles at p1 and p2 can be linked by a path
// of at most three straight segments crossing only empty cells. The ring of
// cells just outside the board counts as empty. Both endpoints must be
// distinct occupied cells on the board; tile kinds are not compared.
func CanConnect(b *Board, p1, p2 Pos) bool {
	_, ok := Path(b, p1, p2)
	return ok
}

// Path returns the waypoints of the first link found between p1 and p2:
// the endpoints plus zero, one or two corners. Shapes are tried in order
// straight, one corner, two corners.
func Path(b *Board, p1, p2 Pos) ([]Pos, bool) {
	if p1 == p2 || !b.InBounds(p1) || !b.InBounds(p2) {
		return nil, false
	}
	if b.At(p1).IsEmpty() || b.At(p2).IsEmpty() {
		return nil, false
	}

	if straight(b, p1, p2) {
		return []Pos{p1, p2}, true
	}
	if c, ok := oneCorner(b, p1, p2); ok {
		return []Pos{p1, c, p2}, true
	}
	if c1, c2, ok := twoCorners(b, p1, p2); ok {
		return []Pos{p1, c1, c2, p2}, true
	}
	return nil, false
}

// straight reports whether a and c share a row or column with every cell
// strictly between them passable. Endpoints are not inspected.
func straight(b *Board, a, c Pos) bool {
	switch {
	case a.Row == c.Row:
		lo, hi := min(a.Col, c.Col), max(a.Col, c.Col)
		for col := lo + 1; col < hi; col++ {
			if !b.passable(P(a.Row, col)) {
				return false
			}
		}
		return true
	case a.Col == c.Col:
		lo, hi := min(a.Row, c.Row), max(a.Row, c.Row)
		for row := lo + 1; row < hi; row++ {
			if !b.passable(P(row, a.Col)) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// oneCorner tries the corners (p1.Row, p2.Col) then (p2.Row, p1.Col).
func oneCorner(b *Board, p1, p2 Pos) (Pos, bool) {
	for _, c := range [2]Pos{P(p1.Row, p2.Col), P(p2.Row, p1.Col)} {
		if b.passable(c) && straight(b, p1, c) && straight(b, c, p2) {
			return c, true
		}
	}
	return Pos{}, false
}

// twoCorners sweeps vertical connectors over columns -1..Cols, then
// horizontal connectors over rows -1..Rows.
func twoCorners(b *Board, p1, p2 Pos) (Pos, Pos, bool) {
	for col := -1; col <= b.Cols; col++ {
		c1, c2 := P(p1.Row, col), P(p2.Row, col)
		if b.passable(c1) && b.passable(c2) &&
			straight(b, p1, c1) && straight(b, c1, c2) && straight(b, c2, p2) {
			return c1, c2, true
		}
	}
	for row := -1; row <= b.Rows; row++ {
		c1, c2 := P(row, p1.Col), P(row, p2.Col)
		if b.passable(c1) && b.passable(c2) &&
			straight(b, p1, c1) && straight(b, c1, c2) && straight(b, c2, p2) {
			return c1, c2, true
		}
	}
	return Pos{}, Pos{}, false
}
