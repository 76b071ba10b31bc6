package mines

import "strings"

// Render returns the glyph of every cell, row by row.
func Render(b *Board, revealAll bool) [][]rune {
	grid := make([][]rune, b.rows)
	for row := range b.rows {
		grid[row] = make([]rune, b.columns)
		for column := range b.columns {
			grid[row][column] = Glyph(b.cells[b.index(row, column)], revealAll)
		}
	}
	return grid
}

// RenderASCII draws the board as a text table:
//
//	#|#|1
//	-+-+-
//	#|2|1
func RenderASCII(b *Board, revealAll bool) string {
	separator := strings.Repeat("-+", b.columns-1) + "-\n"

	var sb strings.Builder
	sb.Grow(b.rows * (4*b.columns + 2))
	for row, glyphs := range Render(b, revealAll) {
		if row > 0 {
			sb.WriteString(separator)
		}
		for column, glyph := range glyphs {
			if column > 0 {
				sb.WriteByte('|')
			}
			sb.WriteRune(glyph)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
