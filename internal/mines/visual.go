package mines

import (
	"fmt"

	"github.com/vancomm/minesweeper/internal/bounded"
)

type Glyph uint8

const (
	GlyphNone Glyph = iota
	GlyphFlag
	GlyphDigit
	GlyphMine
	GlyphExplodedMine
)

func (g Glyph) String() string {
	switch g {
	case GlyphFlag:
		return "flag"
	case GlyphDigit:
		return "digit"
	case GlyphMine:
		return "mine"
	case GlyphExplodedMine:
		return "exploded_mine"
	default:
		return "none"
	}
}

// [Glyph] implements [encoding.TextMarshaler]
func (g Glyph) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Glyph) UnmarshalText(text []byte) error {
	for v := GlyphNone; v <= GlyphExplodedMine; v++ {
		if v.String() == string(text) {
			*g = v
			return nil
		}
	}
	return fmt.Errorf("unknown glyph %q", text)
}

// Visual is everything a renderer needs to draw one cell: a filled
// square of Size pixels at Origin plus an optional glyph on top.
type Visual struct {
	Coord  Coord         `json:"cell"`
	State  CellState     `json:"state"`
	Glyph  Glyph         `json:"glyph"`
	Digit  bounded.Digit `json:"digit"`
	Origin Point         `json:"origin"`
	Size   int           `json:"size"`
	Fill   bounded.Color `json:"-"`
}

func describe(v bounded.SchemaValue, s CellState) (Glyph, bounded.Digit, bounded.Color) {
	switch s {
	case Flagged:
		return GlyphFlag, 0, bounded.Black
	case Exploded:
		return GlyphExplodedMine, 0, bounded.White
	case Revealed:
		if v.IsMine() {
			return GlyphMine, 0, bounded.White
		}
		return GlyphDigit, bounded.Must(bounded.NewDigit(v.Count())), bounded.White
	default:
		return GlyphNone, 0, bounded.Black
	}
}

// Visual panics when c is outside the grid.
func (g *Grid) Visual(c Coord, l Layout) Visual {
	state := g.State(c)
	glyph, digit, fill := describe(g.schema.At(c), state)
	return Visual{
		Coord:  c,
		State:  state,
		Glyph:  glyph,
		Digit:  digit,
		Origin: l.Origin(c),
		Size:   l.CellSize,
		Fill:   fill,
	}
}

// Visuals describes every cell in row-major order.
func (g *Grid) Visuals(l Layout) []Visual {
	vs := make([]Visual, len(g.cells))
	for i := range g.cells {
		vs[i] = g.Visual(coordOf(i, g.Size()), l)
	}
	return vs
}
