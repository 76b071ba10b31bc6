package mines

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimension = errors.New("board must have at least 1 row and 1 column")
	ErrInvalidMineCount = errors.New("board must have 0 or more mines and less mines than cells")
	ErrOutOfBounds      = errors.New("cell is out of the board")
	ErrInvalidCode      = errors.New("invalid cell code")
	ErrInvalidStatus    = errors.New("invalid game status")
	ErrUnknownLevel     = errors.New("unknown game level")
)

// OutOfBoundsError reports a (row, column) pair that does not address a
// cell of the board. It matches [ErrOutOfBounds] with errors.Is.
type OutOfBoundsError struct {
	Row, Column   int
	Rows, Columns int
}

// [OutOfBoundsError] implements [error]
func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"cell %d:%d is out of the board (board is %dx%d, access is 0..n-1 indexed)",
		e.Row, e.Column, e.Rows, e.Columns,
	)
}

func (e OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
