package mines

import "fmt"

// Rand is the source of uniformly distributed integers in [0, n).
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Generate scatters mines uniformly at random over a hidden rows x columns
// board. Positions are drawn with rejection sampling, which stays cheap as
// long as the board is not almost full of mines.
func Generate(rows, columns, mines int, r Rand) (*Board, error) {
	if err := checkDimensions(rows, columns); err != nil {
		return nil, err
	}
	if mines < 0 {
		return nil, fmt.Errorf("%w: mines = %d", ErrInvalidMineCount, mines)
	}
	if cells := rows * columns; mines >= cells {
		return nil, fmt.Errorf(
			"%w: %d mines on %d cells", ErrInvalidMineCount, mines, cells,
		)
	}

	mined := make([]bool, rows*columns)
	points := make([]Point, 0, mines)
	for len(points) < mines {
		row, column := r.IntN(rows), r.IntN(columns)
		if i := row*columns + column; !mined[i] {
			mined[i] = true
			points = append(points, Point{row, column})
		}
	}

	return NewBoard(rows, columns, points)
}
