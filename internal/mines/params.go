package mines

import (
	"fmt"
)

// MaxSize is the largest grid side accepted by [Params.Validate].
const MaxSize = 256

type Params struct {
	Size      int
	MineCount int
}

func (p Params) Validate() error {
	if p.Size <= 0 || p.Size > MaxSize {
		return fmt.Errorf("%w: grid size must be in [1, %d], got %d", ErrInvalidConfig, MaxSize, p.Size)
	}
	if p.MineCount < 0 {
		return fmt.Errorf("%w: mine count must not be negative, got %d", ErrInvalidConfig, p.MineCount)
	}
	if p.MineCount > p.Size*p.Size {
		return fmt.Errorf(
			"%w: mine count %d exceeds %d cells",
			ErrInvalidConfig, p.MineCount, p.Size*p.Size,
		)
	}
	return nil
}

// String returns the params in "size:mines" form.
func (p Params) String() string {
	return fmt.Sprintf("%d:%d", p.Size, p.MineCount)
}
