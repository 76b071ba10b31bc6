package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRejectsBadParams(t *testing.T) {
	tests := []struct {
		name                 string
		rows, columns, mines int
		err                  error
	}{
		{"no rows", 0, 5, 1, ErrInvalidDimension},
		{"negative rows", -1, 5, 1, ErrInvalidDimension},
		{"no columns", 5, 0, 1, ErrInvalidDimension},
		{"negative mines", 5, 5, -1, ErrInvalidMineCount},
		{"as many mines as cells", 5, 5, 25, ErrInvalidMineCount},
		{"more mines than cells", 2, 2, 10, ErrInvalidMineCount},
		{"single mined cell", 1, 1, 1, ErrInvalidMineCount},
	}

	r := rand.New(rand.NewPCG(1, 2))
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board, err := Generate(test.rows, test.columns, test.mines, r)
			assert.ErrorIs(t, err, test.err)
			assert.Nil(t, board)
		})
	}
}

func TestGenerateSingleSafeCell(t *testing.T) {
	board, err := Generate(1, 1, 0, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	cell, err := board.Cell(0, 0)
	require.NoError(t, err)
	assert.False(t, cell.IsMine())
	assert.Equal(t, 0, cell.Content().Adjacent())
	assert.Equal(t, Hidden, cell.Visibility())
}

func TestGenerateBeginner(t *testing.T) {
	board, err := Generate(8, 8, 10, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)

	mines, safe := 0, 0
	for row := range 8 {
		for column := range 8 {
			cell, err := board.Cell(row, column)
			require.NoError(t, err)
			assert.Equal(t, Hidden, cell.Visibility())
			if cell.IsMine() {
				mines++
			} else {
				safe++
			}
		}
	}
	assert.Equal(t, 10, mines)
	assert.Equal(t, 54, safe)
	assert.Equal(t, 10, board.Mines())
}

// countMinesAround recomputes adjacency without going through Board.neighbors.
func countMinesAround(t *testing.T, b *Board, row, column int) int {
	t.Helper()
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			cell, err := b.Cell(row+dr, column+dc)
			if err != nil {
				continue
			}
			if cell.IsMine() {
				n++
			}
		}
	}
	return n
}

func TestGeneratedAdjacency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                 string
		rows, columns, mines int
	}{
		{"1x1(0)", 1, 1, 0},
		{"1x10(9)", 1, 10, 9},
		{"8x8(10)", 8, 8, 10},
		{"16x16(40)", 16, 16, 40},
		{"16x30(99)", 16, 30, 99},
		{"9x9(80)", 9, 9, 80},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			for range 20 {
				board, err := Generate(test.rows, test.columns, test.mines, r)
				require.NoError(t, err)

				mines := 0
				for row := range test.rows {
					for column := range test.columns {
						cell, _ := board.Cell(row, column)
						if cell.IsMine() {
							mines++
							continue
						}
						assert.Equal(t,
							countMinesAround(t, board, row, column),
							cell.Content().Adjacent(),
							"cell %d:%d", row, column,
						)
					}
				}
				assert.Equal(t, test.mines, mines)
			}
		})
	}
}

func TestGenerateLevel(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for _, level := range Levels {
		t.Run(level.Name, func(t *testing.T) {
			board, err := GenerateLevel(level, r)
			require.NoError(t, err)
			assert.Equal(t, level.Rows, board.Rows())
			assert.Equal(t, level.Columns, board.Columns())
			assert.Equal(t, level.Mines, board.Mines())
		})
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("Expert")
	require.NoError(t, err)
	assert.Equal(t, Expert, level)

	_, err = ParseLevel("impossible")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}
