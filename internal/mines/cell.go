package mines

import "fmt"

type CellState uint8

const (
	Hidden CellState = iota
	Revealed
	Flagged
	Exploded
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	case Exploded:
		return "exploded"
	default:
		return fmt.Sprintf("CellState(%d)", uint8(s))
	}
}

// [CellState] implements [encoding.TextMarshaler]
func (s CellState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *CellState) UnmarshalText(text []byte) error {
	for c := Hidden; c <= Exploded; c++ {
		if c.String() == string(text) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("unknown cell state %q", text)
}
