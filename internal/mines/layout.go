package mines

import "fmt"

const (
	DefaultCellSize = 30
	DefaultGap      = 1
)

// Layout maps cells to pixel rectangles. Every cell, the first one
// included, is preceded by a Gap-wide separator on both axes.
type Layout struct {
	CellSize int `json:"cell_size"`
	Gap      int `json:"gap"`
}

var DefaultLayout = Layout{CellSize: DefaultCellSize, Gap: DefaultGap}

func NewLayout(cellSize, gap int) (Layout, error) {
	if cellSize <= 0 {
		return Layout{}, fmt.Errorf("%w: cell size must be positive, got %d", ErrInvalidConfig, cellSize)
	}
	if gap < 0 {
		return Layout{}, fmt.Errorf("%w: gap must not be negative, got %d", ErrInvalidConfig, gap)
	}
	return Layout{CellSize: cellSize, Gap: gap}, nil
}

func (l Layout) offset(i int) int {
	return i*l.CellSize + (i+1)*l.Gap
}

// Origin returns the top left pixel of the cell.
func (l Layout) Origin(c Coord) Point {
	return Point{X: l.offset(c.X), Y: l.offset(c.Y)}
}

// ScreenSize is the side in pixels of a size x size grid, trailing gap included.
func (l Layout) ScreenSize(size int) int {
	return size*l.CellSize + (size+1)*l.Gap
}

// CellAt maps a pixel to the cell whose body contains it. The second
// result is false when p lies on a separator or outside the grid.
func (l Layout) CellAt(size int, p Point) (Coord, bool) {
	x, ok := l.cellIndex(size, p.X)
	if !ok {
		return Coord{}, false
	}
	y, ok := l.cellIndex(size, p.Y)
	if !ok {
		return Coord{}, false
	}
	return Coord{X: x, Y: y}, true
}

func (l Layout) cellIndex(size, px int) (int, bool) {
	if px < 0 {
		return 0, false
	}
	edge := 0
	for i := range size {
		edge += l.Gap
		if px < edge {
			return 0, false
		}
		edge += l.CellSize
		if px < edge {
			return i, true
		}
	}
	return 0, false
}
