// Package core provides fundamental types shared by the game and the terminal platform.
// It has no external dependencies (especially no Bubble Tea), so game logic
// stays pure and testable.
package core

// Rect is an axis-aligned box of screen cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle with the given position and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether the cell (x, y) is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Grid lays out equal cells in rows and columns with fixed gaps between them.
type Grid struct {
	X, Y         int // Top-left of the first cell
	Rows, Cols   int
	CellW, CellH int
	GapX, GapY   int
}

// Size returns the width and height the grid covers.
func (g Grid) Size() (w, h int) {
	if g.Rows <= 0 || g.Cols <= 0 {
		return 0, 0
	}
	return g.Cols*g.CellW + (g.Cols-1)*g.GapX, g.Rows*g.CellH + (g.Rows-1)*g.GapY
}

// Bounds returns the rectangle the grid covers.
func (g Grid) Bounds() Rect {
	w, h := g.Size()
	return NewRect(g.X, g.Y, w, h)
}

// Cell returns the rectangle of the cell at (row, col).
func (g Grid) Cell(row, col int) Rect {
	return NewRect(g.X+col*(g.CellW+g.GapX), g.Y+row*(g.CellH+g.GapY), g.CellW, g.CellH)
}

// At maps a screen cell to the grid cell covering it. Gaps and cells
// outside the grid report false.
func (g Grid) At(x, y int) (row, col int, ok bool) {
	if !g.Bounds().Contains(x, y) {
		return 0, 0, false
	}
	dx, dy := x-g.X, y-g.Y
	col, row = dx/(g.CellW+g.GapX), dy/(g.CellH+g.GapY)
	if dx%(g.CellW+g.GapX) >= g.CellW || dy%(g.CellH+g.GapY) >= g.CellH {
		return 0, 0, false
	}
	return row, col, true
}

// CenterIn moves the grid to the middle of area. It reports false, leaving
// the grid unchanged, when the grid does not fit.
func (g Grid) CenterIn(area Rect) (Grid, bool) {
	w, h := g.Size()
	if w > area.W || h > area.H {
		return g, false
	}
	g.X = area.X + (area.W-w)/2
	g.Y = area.Y + (area.H-h)/2
	return g, true
}
