package mines

import (
	"fmt"

	"github.com/vancomm/minesweeper/internal/bounded"
)

// Coord addresses a cell by column and row.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoord(x, y int) (Coord, error) {
	cx, err := bounded.NewNonNegative(x)
	if err != nil {
		return Coord{}, fmt.Errorf("column: %w", err)
	}
	cy, err := bounded.NewNonNegative(y)
	if err != nil {
		return Coord{}, fmt.Errorf("row: %w", err)
	}
	return Coord{cx.Int(), cy.Int()}, nil
}

func (c Coord) In(size int) bool {
	return 0 <= c.X && c.X < size && 0 <= c.Y && c.Y < size
}

func (c Coord) index(size int) int {
	return c.Y*size + c.X
}

func coordOf(i, size int) Coord {
	return Coord{X: i % size, Y: i / size}
}

func (c Coord) String() string {
	return fmt.Sprintf("%d:%d", c.X, c.Y)
}

// Point is a position in pixel space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewPoint(x, y int) (Point, error) {
	px, err := bounded.NewNonNegative(x)
	if err != nil {
		return Point{}, fmt.Errorf("x: %w", err)
	}
	py, err := bounded.NewNonNegative(y)
	if err != nil {
		return Point{}, fmt.Errorf("y: %w", err)
	}
	return Point{px.Int(), py.Int()}, nil
}

type NeighborMode uint8

const (
	// Full is the 8-neighbourhood: orthogonal and diagonal cells.
	Full NeighborMode = iota
	// Direct is orthogonal cells only: up, left, right, down.
	Direct
)

func (m NeighborMode) String() string {
	switch m {
	case Full:
		return "full"
	case Direct:
		return "direct"
	default:
		return "unknown"
	}
}

// Neighbors lists the cells around c that lie inside a size x size grid,
// row above first, then the same row, then the row below.
func Neighbors(c Coord, size int, mode NeighborMode) []Coord {
	ns := make([]Coord, 0, 8)
	add := func(x, y int) {
		if n := (Coord{x, y}); n.In(size) {
			ns = append(ns, n)
		}
	}

	if mode == Direct {
		add(c.X, c.Y-1)
		add(c.X-1, c.Y)
		add(c.X+1, c.Y)
		add(c.X, c.Y+1)
		return ns
	}

	for dx := -1; dx <= 1; dx++ {
		add(c.X+dx, c.Y-1)
	}
	add(c.X-1, c.Y)
	add(c.X+1, c.Y)
	for dx := -1; dx <= 1; dx++ {
		add(c.X+dx, c.Y+1)
	}
	return ns
}
