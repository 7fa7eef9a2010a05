package bounded

import (
	"errors"
	"fmt"
)

var ErrOutOfRange = errors.New("value out of range")

type RangeError struct {
	Type     string
	Value    int
	Min, Max int
}

// [RangeError] implements [error]
func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be in [%d, %d], got %d", e.Type, e.Min, e.Max, e.Value)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

func check(typ string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &RangeError{Type: typ, Value: v, Min: lo, Max: hi}
	}
	return nil
}

// Must panics if err is non-nil. Use it for values known to be in range.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
