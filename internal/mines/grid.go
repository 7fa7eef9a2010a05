package mines

import (
	"math/rand/v2"
	"strings"

	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/bounded"
)

var Log = logrus.New()

// Reveal propagates through zero-count cells over the full
// 8-neighbourhood, so every cell bordering an opened region is opened too.
const revealNeighbors = Full

// Grid pairs a mine schema with the player-visible state of every cell.
// Both are indexed row-major and always have the same shape.
type Grid struct {
	schema *Schema
	cells  []CellState
}

func NewGrid(size, mineCount int, r *rand.Rand) (*Grid, error) {
	schema, err := NewSchema(size, mineCount, r)
	if err != nil {
		return nil, err
	}
	Log.WithFields(logrus.Fields{
		"size":  size,
		"mines": mineCount,
	}).Debug("generated mine schema")
	return NewGridFromSchema(schema), nil
}

func NewGridFromSchema(s *Schema) *Grid {
	return &Grid{
		schema: s,
		cells:  make([]CellState, len(s.cells)),
	}
}

func (g *Grid) Size() int {
	return g.schema.size
}

func (g *Grid) MineCount() int {
	return g.schema.MineCount()
}

func (g *Grid) FlagCount() (count int) {
	for _, s := range g.cells {
		if s == Flagged {
			count++
		}
	}
	return
}

// State panics when c is outside the grid.
func (g *Grid) State(c Coord) CellState {
	return g.cells[g.index(c)]
}

// Value panics when c is outside the grid.
func (g *Grid) Value(c Coord) bounded.SchemaValue {
	return g.schema.At(c)
}

func (g *Grid) index(c Coord) int {
	return c.index(g.schema.size)
}

// Reveal opens a hidden cell. When the cell has no adjacent mines its
// neighbours are opened as well, repeating for every zero-count cell
// reached. Flagged cells are never opened. Returns the opened cells in
// order, or nil when c is outside the grid or not hidden.
func (g *Grid) Reveal(c Coord) []Coord {
	if !c.In(g.Size()) || g.cells[g.index(c)] != Hidden {
		return nil
	}

	var (
		revealed []Coord
		queue    deque.Deque[Coord]
		visited  = make([]bool, len(g.cells))
	)
	queue.PushBack(c)
	visited[g.index(c)] = true

	for queue.Len() > 0 {
		cur := queue.PopFront()
		g.cells[g.index(cur)] = Revealed
		revealed = append(revealed, cur)

		if g.schema.At(cur) != 0 {
			continue
		}
		for _, n := range Neighbors(cur, g.Size(), revealNeighbors) {
			i := g.index(n)
			if visited[i] || g.cells[i] != Hidden {
				continue
			}
			visited[i] = true
			queue.PushBack(n)
		}
	}

	Log.WithFields(logrus.Fields{
		"cell":     c.String(),
		"revealed": len(revealed),
	}).Debug("reveal")
	return revealed
}

// ToggleFlag flips a cell between hidden and flagged. Revealed and
// exploded cells are left alone.
func (g *Grid) ToggleFlag(c Coord) {
	if !c.In(g.Size()) {
		return
	}
	i := g.index(c)
	switch g.cells[i] {
	case Hidden:
		g.cells[i] = Flagged
	case Flagged:
		g.cells[i] = Hidden
	}
}

func (g *Grid) IsMine(c Coord) bool {
	return c.In(g.Size()) && g.schema.At(c).IsMine()
}

// ExplodeMine marks the mine at c as the one that went off and reveals
// the whole grid. Does nothing if c is not a mine.
func (g *Grid) ExplodeMine(c Coord) {
	if !g.IsMine(c) {
		return
	}
	g.cells[g.index(c)] = Exploded
	g.RevealAll()
}

// HasWon reports whether every cell without a mine has been revealed.
func (g *Grid) HasWon() bool {
	for i, s := range g.cells {
		if g.schema.cells[i].IsMine() {
			continue
		}
		if s == Hidden || s == Flagged {
			return false
		}
	}
	return true
}

func (g *Grid) RevealAll() {
	for i, s := range g.cells {
		if s != Exploded {
			g.cells[i] = Revealed
		}
	}
}

func (g *Grid) String() string {
	var b strings.Builder
	size := g.Size()
	for i, s := range g.cells {
		var ch string
		switch s {
		case Hidden:
			ch = "-"
		case Flagged:
			ch = "F"
		case Exploded:
			ch = "X"
		default:
			ch = g.schema.cells[i].String()
		}
		b.WriteString(ch)
		if (i+1)%size == 0 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
