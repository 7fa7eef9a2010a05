package mines

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/vancomm/minesweeper/internal/bounded"
)

// Schema is the immutable mine layout of a square grid, stored row-major.
// Empty cells carry the number of mines in their 8-neighbourhood.
type Schema struct {
	size  int
	cells []bounded.SchemaValue
}

// NewSchema places mineCount mines uniformly at random: a flat list of
// mines followed by empty cells is shuffled, then read row by row.
func NewSchema(size, mineCount int, r *rand.Rand) (*Schema, error) {
	if err := (Params{Size: size, MineCount: mineCount}).Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = NewRand(0)
	}

	cells := make([]bounded.SchemaValue, size*size)
	for i := range mineCount {
		cells[i] = bounded.SchemaMine
	}
	r.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})

	s := &Schema{size: size, cells: cells}
	if err := s.countAdjacent(); err != nil {
		return nil, err
	}
	return s, nil
}

// SchemaFromMines builds a schema with mines at exactly the given cells.
func SchemaFromMines(size int, mines []Coord) (*Schema, error) {
	if err := (Params{Size: size, MineCount: len(mines)}).Validate(); err != nil {
		return nil, err
	}

	cells := make([]bounded.SchemaValue, size*size)
	for _, m := range mines {
		if !m.In(size) {
			return nil, fmt.Errorf("%w: mine %s outside %dx%d grid", ErrInvalidConfig, m, size, size)
		}
		i := m.index(size)
		if cells[i].IsMine() {
			return nil, fmt.Errorf("%w: duplicate mine %s", ErrInvalidConfig, m)
		}
		cells[i] = bounded.SchemaMine
	}

	s := &Schema{size: size, cells: cells}
	if err := s.countAdjacent(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) countAdjacent() error {
	for i, v := range s.cells {
		if v.IsMine() {
			continue
		}
		n := 0
		for _, nb := range Neighbors(coordOf(i, s.size), s.size, Full) {
			if s.At(nb).IsMine() {
				n++
			}
		}
		count, err := bounded.NewSchemaValue(n)
		if err != nil {
			return fmt.Errorf("count at %s: %w", coordOf(i, s.size), err)
		}
		s.cells[i] = count
	}
	return nil
}

func (s *Schema) Size() int {
	return s.size
}

// At panics when c is outside the grid.
func (s *Schema) At(c Coord) bounded.SchemaValue {
	return s.cells[c.index(s.size)]
}

func (s *Schema) MineCount() (count int) {
	for _, v := range s.cells {
		if v.IsMine() {
			count++
		}
	}
	return
}

func (s *Schema) String() string {
	var b strings.Builder
	for i, v := range s.cells {
		b.WriteString(v.String())
		if (i+1)%s.size == 0 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
