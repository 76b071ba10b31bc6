package mines

import "time"

// Game is one snapshot of a game. Owner, timestamps and play time are
// bookkeeping supplied by the caller; the engine only reads Status and
// Board.
type Game struct {
	ID         int64
	Owner      string
	Status     Status
	CreatedAt  time.Time
	FinishedAt *time.Time
	PlayTime   time.Duration
	Board      *Board
}

func NewGame(id int64, owner string, board *Board, now time.Time) Game {
	return Game{
		ID:        id,
		Owner:     owner,
		Status:    Created,
		CreatedAt: now,
		Board:     board,
	}
}

func (g Game) IsFinished() bool {
	return g.Status.IsTerminal()
}

func (g Game) CanBePaused() bool {
	return g.Status == Playing
}

// Pause stops a game being played. Any other status yields [NoChanges].
func (g Game) Pause() Change {
	if !g.CanBePaused() {
		return NoChanges
	}
	return Change{GameID: g.ID, Status: Paused, Board: g.Board}
}

// Apply returns the snapshot that results from c. Finished games and empty
// changes are returned as they are.
func (g Game) Apply(c Change, now time.Time) Game {
	if c.HasNoChanges() || g.IsFinished() {
		return g
	}
	g.Status = c.Status
	g.Board = c.Board
	if g.Status.IsTerminal() {
		finishedAt := now
		g.FinishedAt = &finishedAt
	}
	return g
}

// Grid renders the board, exposing the solution once the game is over.
func (g Game) Grid() [][]rune {
	return Render(g.Board, g.IsFinished())
}

func (g Game) ASCII() string {
	return RenderASCII(g.Board, g.IsFinished())
}

func (g Game) change(status Status, board *Board) Change {
	return Change{GameID: g.ID, Status: status, Board: board}
}

// target validates the coordinates of an action and returns the index of
// the addressed cell.
func (g Game) target(row, column int) (int, error) {
	if !g.Board.InBounds(row, column) {
		return 0, OutOfBoundsError{row, column, g.Board.rows, g.Board.columns}
	}
	return g.Board.index(row, column), nil
}
