// Package bounded holds small integer types whose constructors reject
// out-of-range input instead of clamping it.
package bounded

import (
	"math"
	"strconv"
)

type NonNegative int

func NewNonNegative(v int) (NonNegative, error) {
	if err := check("non-negative", v, 0, math.MaxInt); err != nil {
		return 0, err
	}
	return NonNegative(v), nil
}

func (n NonNegative) Int() int { return int(n) }

type Byte uint8

func NewByte(v int) (Byte, error) {
	if err := check("byte", v, 0, math.MaxUint8); err != nil {
		return 0, err
	}
	return Byte(v), nil
}

type Digit uint8

func NewDigit(v int) (Digit, error) {
	if err := check("digit", v, 0, 9); err != nil {
		return 0, err
	}
	return Digit(v), nil
}

func (d Digit) String() string {
	return strconv.Itoa(int(d))
}

// SchemaValue is one cell of a mine schema: either [SchemaMine] or the
// number of mines around an empty cell.
type SchemaValue int8

const SchemaMine SchemaValue = -1

func NewSchemaValue(v int) (SchemaValue, error) {
	if err := check("schema value", v, -1, 8); err != nil {
		return 0, err
	}
	return SchemaValue(v), nil
}

func (s SchemaValue) IsMine() bool {
	return s == SchemaMine
}

// Count returns the adjacent mine count, or 0 for a mine.
func (s SchemaValue) Count() int {
	if s.IsMine() {
		return 0
	}
	return int(s)
}

func (s SchemaValue) String() string {
	if s.IsMine() {
		return "*"
	}
	return strconv.Itoa(int(s))
}
