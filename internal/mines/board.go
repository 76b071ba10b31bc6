package mines

import (
	"fmt"
	"slices"
)

type Point struct {
	Row, Column int
}

// Board is a rows x columns grid of cells stored row-major. Boards handed
// out by this package are never mutated; actions work on a clone.
type Board struct {
	rows, columns int
	mines         int
	cells         []Cell
}

func checkDimensions(rows, columns int) error {
	if rows < 1 {
		return fmt.Errorf("%w: rows = %d", ErrInvalidDimension, rows)
	}
	if columns < 1 {
		return fmt.Errorf("%w: columns = %d", ErrInvalidDimension, columns)
	}
	return nil
}

// NewBoard lays out a hidden board with mines at the given points and
// computes the adjacency count of every other cell. Repeated points are
// counted once.
func NewBoard(rows, columns int, mines []Point) (*Board, error) {
	if err := checkDimensions(rows, columns); err != nil {
		return nil, err
	}
	b := &Board{
		rows:    rows,
		columns: columns,
		cells:   make([]Cell, rows*columns),
	}
	for _, p := range mines {
		if !b.InBounds(p.Row, p.Column) {
			return nil, OutOfBoundsError{p.Row, p.Column, rows, columns}
		}
		i := b.index(p.Row, p.Column)
		if !b.cells[i].content.mine {
			b.cells[i].content = MineContent()
			b.mines++
		}
	}
	if b.mines >= len(b.cells) {
		return nil, fmt.Errorf(
			"%w: %d mines on %d cells", ErrInvalidMineCount, b.mines, len(b.cells),
		)
	}
	b.countAdjacentMines()
	return b, nil
}

// BoardFromCodes rebuilds a stored board.
func BoardFromCodes(rows, columns int, codes []Code) (*Board, error) {
	if err := checkDimensions(rows, columns); err != nil {
		return nil, err
	}
	if len(codes) != rows*columns {
		return nil, fmt.Errorf(
			"%w: %d codes for a %dx%d board", ErrInvalidCode, len(codes), rows, columns,
		)
	}
	b := &Board{
		rows:    rows,
		columns: columns,
		cells:   make([]Cell, len(codes)),
	}
	for i, code := range codes {
		cell, err := Decode(code)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		if cell.content.mine {
			b.mines++
		}
		b.cells[i] = cell
	}
	return b, nil
}

func (b *Board) Codes() []Code {
	codes := make([]Code, len(b.cells))
	for i, c := range b.cells {
		codes[i] = Encode(c)
	}
	return codes
}

func (b *Board) Rows() int    { return b.rows }
func (b *Board) Columns() int { return b.columns }
func (b *Board) Mines() int   { return b.mines }

func (b *Board) InBounds(row, column int) bool {
	return 0 <= row && row < b.rows && 0 <= column && column < b.columns
}

func (b *Board) Cell(row, column int) (Cell, error) {
	if !b.InBounds(row, column) {
		return Cell{}, OutOfBoundsError{row, column, b.rows, b.columns}
	}
	return b.cells[b.index(row, column)], nil
}

func (b *Board) Clone() *Board {
	clone := *b
	clone.cells = slices.Clone(b.cells)
	return &clone
}

func (b *Board) Equal(other *Board) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.rows == other.rows &&
		b.columns == other.columns &&
		slices.Equal(b.cells, other.cells)
}

func (b *Board) index(row, column int) int {
	return row*b.columns + column
}

func (b *Board) coords(i int) (row, column int) {
	return i / b.columns, i % b.columns
}

// neighbors calls fn with the index of every cell around i, skipping
// positions past the edges.
func (b *Board) neighbors(i int, fn func(j int)) {
	row, column := b.coords(i)
	fromRow, toRow := max(0, row-1), min(row+1, b.rows-1)
	fromCol, toCol := max(0, column-1), min(column+1, b.columns-1)
	for r := fromRow; r <= toRow; r++ {
		for c := fromCol; c <= toCol; c++ {
			if j := b.index(r, c); j != i {
				fn(j)
			}
		}
	}
}

func (b *Board) countAdjacentMines() {
	for i := range b.cells {
		if b.cells[i].content.mine {
			continue
		}
		n := 0
		b.neighbors(i, func(j int) {
			if b.cells[j].content.mine {
				n++
			}
		})
		b.cells[i].content = SafeContent(n)
	}
}

// allSafeRevealed reports whether exactly the mines are left unrevealed.
func (b *Board) allSafeRevealed() bool {
	unrevealed := 0
	for _, c := range b.cells {
		if c.visibility != Revealed {
			unrevealed++
		}
	}
	return unrevealed == b.mines
}
