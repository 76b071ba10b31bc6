package mines

// Flag marks a hidden cell as suspected. Flags are advisory: they never end
// the game and do not prevent the cell from being revealed.
func (g Game) Flag(row, column int) (Change, error) {
	if g.IsFinished() {
		return NoChanges, nil
	}
	i, err := g.target(row, column)
	if err != nil {
		return NoChanges, err
	}
	if g.Board.cells[i].visibility != Hidden {
		return NoChanges, nil
	}
	board := g.Board.Clone()
	board.cells[i] = board.cells[i].with(Flagged)
	return g.change(Playing, board), nil
}

func (g Game) Unflag(row, column int) (Change, error) {
	if g.IsFinished() {
		return NoChanges, nil
	}
	i, err := g.target(row, column)
	if err != nil {
		return NoChanges, err
	}
	if !g.Board.cells[i].IsFlagged() {
		return NoChanges, nil
	}
	board := g.Board.Clone()
	board.cells[i] = board.cells[i].with(Hidden)
	return g.change(Playing, board), nil
}
