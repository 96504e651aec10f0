// Package core provides fundamental types and utilities for the FruitLink
// front ends. It contains no external dependencies (especially no Bubble Tea)
// to keep game logic pure and testable.
package core

// Rect is an axis-aligned area on the screen.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Centered returns a w x h rectangle centered inside r.
func (r Rect) Centered(w, h int) Rect {
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

// Grid places fixed-width cells inside a bordered frame. A ring of margin
// cells surrounds the board, so rows and columns run from -1 to Rows/Cols.
type Grid struct {
	Frame Rect
	CellW int
}

// NewGrid centres a cols x rows grid horizontally on a screen of width
// screenW, with the frame's top border on row top.
func NewGrid(screenW, top, cols, rows, cellW int) Grid {
	w := (cols+2)*cellW + 2 // margin ring + border
	h := rows + 4
	return Grid{Frame: NewRect((screenW-w)/2, top, w, h), CellW: cellW}
}

// Origin returns the screen position of the first column of cell (row, col).
func (g Grid) Origin(row, col int) (int, int) {
	return g.Frame.X + 1 + (col+1)*g.CellW, g.Frame.Y + 1 + (row + 1)
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	return min(max(val, lo), hi)
}
