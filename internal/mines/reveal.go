package mines

import "github.com/gammazero/deque"

// Reveal opens the cell at row, column.
//
// A mine ends the game as [Loose] with only that mine exposed. A safe cell
// is opened and, when it has no mined neighbors, the whole connected
// region of empty cells is opened together with its numbered border. The
// game is [Won] once every safe cell is open.
//
// Finished games and already revealed cells yield [NoChanges], even for
// coordinates off the board of a finished game.
func (g Game) Reveal(row, column int) (Change, error) {
	if g.IsFinished() {
		return NoChanges, nil
	}
	i, err := g.target(row, column)
	if err != nil {
		return NoChanges, err
	}
	if g.Board.cells[i].IsRevealed() {
		return NoChanges, nil
	}

	board := g.Board.Clone()
	if board.cells[i].IsMine() {
		board.cells[i] = board.cells[i].with(Revealed)
		return g.change(Loose, board), nil
	}

	board.floodReveal(i)

	if board.allSafeRevealed() {
		return g.change(Won, board), nil
	}
	return g.change(Playing, board), nil
}

// floodReveal opens the safe cell at start and keeps opening around every
// opened cell that has no mined neighbors. Opening a cell marks it as
// visited, so no cell is queued twice.
func (b *Board) floodReveal(start int) {
	var todo deque.Deque[int]

	b.cells[start] = b.cells[start].with(Revealed)
	todo.PushBack(start)

	for todo.Len() > 0 {
		i := todo.PopFront()
		if b.cells[i].content.adjacent != 0 {
			continue
		}
		b.neighbors(i, func(j int) {
			c := b.cells[j]
			if c.IsRevealed() || c.IsMine() {
				return
			}
			b.cells[j] = c.with(Revealed)
			todo.PushBack(j)
		})
	}
}
