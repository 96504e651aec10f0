package core

import "testing"

func TestRectCentered(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)
	inner := outer.Centered(20, 6)

	if inner.X != 30 || inner.Y != 9 || inner.W != 20 || inner.H != 6 {
		t.Errorf("Centered() = %+v", inner)
	}
	if inner.Right() != 50 || inner.Bottom() != 15 {
		t.Errorf("Right/Bottom = (%d, %d), expected (50, 15)", inner.Right(), inner.Bottom())
	}
	cx, cy := inner.Center()
	if cx != 40 || cy != 12 {
		t.Errorf("Center() = (%d, %d), expected (40, 12)", cx, cy)
	}
}

func TestGrid(t *testing.T) {
	// 6x4 board of 3-wide cells: 8 cells with margin, plus the border
	g := NewGrid(80, 3, 6, 4, 3)

	if g.Frame.W != 26 || g.Frame.H != 8 {
		t.Fatalf("frame = %+v, expected 26x8", g.Frame)
	}
	if g.Frame.X != 27 || g.Frame.Y != 3 {
		t.Errorf("frame origin = (%d, %d), expected (27, 3)", g.Frame.X, g.Frame.Y)
	}

	tests := []struct {
		name     string
		row, col int
		x, y     int
	}{
		{"top-left margin", -1, -1, 28, 4},
		{"first cell", 0, 0, 31, 5},
		{"last cell", 3, 5, 46, 8},
		{"bottom-right margin", 4, 6, 49, 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := g.Origin(tc.row, tc.col)
			if x != tc.x || y != tc.y {
				t.Errorf("Origin(%d, %d) = (%d, %d), expected (%d, %d)", tc.row, tc.col, x, y, tc.x, tc.y)
			}
			// Every cell stays inside the border
			if x <= g.Frame.X || x+g.CellW >= g.Frame.Right() || y <= g.Frame.Y || y >= g.Frame.Bottom()-1 {
				t.Errorf("cell (%d, %d) at (%d, %d) touches the border", tc.row, tc.col, x, y)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}
