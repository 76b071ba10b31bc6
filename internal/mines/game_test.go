package mines

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T, rows, columns int, mines ...Point) Game {
	t.Helper()
	board, err := NewBoard(rows, columns, mines)
	require.NoError(t, err)
	return NewGame(1, "player@example.com", board, testNow)
}

// cornerMineGame is a 3x3 board with a single mine at 0:2.
func cornerMineGame(t *testing.T) Game {
	return newTestGame(t, 3, 3, Point{0, 2})
}

func visibilities(b *Board) []Visibility {
	vs := make([]Visibility, len(b.cells))
	for i, c := range b.cells {
		vs[i] = c.visibility
	}
	return vs
}

func play(t *testing.T, g Game, action func(Game) (Change, error)) Game {
	t.Helper()
	change, err := action(g)
	require.NoError(t, err)
	require.False(t, change.HasNoChanges())
	return g.Apply(change, testNow)
}

func reveal(row, column int) func(Game) (Change, error) {
	return func(g Game) (Change, error) { return g.Reveal(row, column) }
}

func flag(row, column int) func(Game) (Change, error) {
	return func(g Game) (Change, error) { return g.Flag(row, column) }
}

func TestNewGameIsCreated(t *testing.T) {
	g := cornerMineGame(t)
	assert.Equal(t, Created, g.Status)
	assert.Equal(t, testNow, g.CreatedAt)
	assert.Nil(t, g.FinishedAt)
	assert.False(t, g.IsFinished())
	assert.False(t, g.CanBePaused())
}

func TestRevealFarCornerWins(t *testing.T) {
	g := cornerMineGame(t)
	before := g.Board.Clone()

	change, err := g.Reveal(2, 0)
	require.NoError(t, err)

	assert.Equal(t, Won, change.Status)
	assert.Equal(t, g.ID, change.GameID)
	for i, c := range change.Board.cells {
		if c.IsMine() {
			assert.Equal(t, Hidden, c.visibility, "mine must stay hidden")
		} else {
			assert.Equal(t, Revealed, c.visibility, "cell %d", i)
		}
	}
	assert.True(t, before.Equal(g.Board), "input board must not be mutated")
}

func TestRevealMineLooses(t *testing.T) {
	g := cornerMineGame(t)

	change, err := g.Reveal(0, 2)
	require.NoError(t, err)
	assert.Equal(t, Loose, change.Status)

	want := visibilities(g.Board)
	want[2] = Revealed
	assert.Equal(t, want, visibilities(change.Board))

	lost := g.Apply(change, testNow)
	assert.True(t, lost.IsFinished())
	require.NotNil(t, lost.FinishedAt)
	assert.Equal(t, testNow, *lost.FinishedAt)
}

func TestRevealNumberDoesNotCascade(t *testing.T) {
	g := cornerMineGame(t)

	change, err := g.Reveal(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Playing, change.Status)

	want := visibilities(g.Board)
	want[4] = Revealed
	assert.Equal(t, want, visibilities(change.Board))
}

func TestRevealIsIdempotent(t *testing.T) {
	g := play(t, cornerMineGame(t), reveal(1, 1))

	change, err := g.Reveal(1, 1)
	require.NoError(t, err)
	assert.True(t, change.HasNoChanges())
	assert.Equal(t, g, g.Apply(change, testNow))
}

func TestRevealFlaggedCell(t *testing.T) {
	g := play(t, cornerMineGame(t), flag(1, 1))
	cell, _ := g.Board.Cell(1, 1)
	require.True(t, cell.IsFlagged())

	g = play(t, g, reveal(1, 1))
	cell, _ = g.Board.Cell(1, 1)
	assert.Equal(t, Revealed, cell.Visibility())
	assert.Equal(t, Playing, g.Status)
}

func TestFloodClearsFlags(t *testing.T) {
	g := play(t, cornerMineGame(t), flag(2, 2))
	g = play(t, g, reveal(2, 0))

	cell, _ := g.Board.Cell(2, 2)
	assert.Equal(t, Revealed, cell.Visibility())
	assert.Equal(t, Won, g.Status)
}

func TestFloodStopsAtNumbers(t *testing.T) {
	// 4x4, mines on the right column, the numbered third column walls in
	// the flood started from 0:0.
	g := newTestGame(t, 4, 4, Point{0, 3}, Point{1, 3}, Point{2, 3}, Point{3, 3})

	g = play(t, g, reveal(0, 0))
	assert.Equal(t, Won, g.Status)
	want := " | |2|#\n-+-+-+-\n" +
		" | |3|#\n-+-+-+-\n" +
		" | |3|#\n-+-+-+-\n" +
		" | |2|#\n"
	assert.Equal(t, want, RenderASCII(g.Board, false))
}

func TestFloodDoesNotCrossNumberWall(t *testing.T) {
	// mines split the board, the right side stays hidden
	g := newTestGame(t, 3, 5, Point{0, 2}, Point{2, 2})

	g = play(t, g, reveal(0, 0))
	assert.Equal(t, Playing, g.Status)
	for row := range 3 {
		for column := 3; column < 5; column++ {
			cell, _ := g.Board.Cell(row, column)
			assert.Equal(t, Hidden, cell.Visibility(), "cell %d:%d", row, column)
		}
	}
}

func TestFloodProperties(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(7, 8))

	for range 200 {
		board, err := Generate(16, 30, 60, r)
		require.NoError(t, err)

		start := -1
		for i, c := range board.cells {
			if !c.IsMine() && c.content.adjacent == 0 {
				start = i
				break
			}
		}
		if start < 0 {
			continue
		}

		g := NewGame(1, "", board, testNow)
		row, column := board.coords(start)
		change, err := g.Reveal(row, column)
		require.NoError(t, err)
		after := change.Board

		for i, c := range after.cells {
			if c.IsMine() {
				require.Equal(t, Hidden, c.visibility)
				continue
			}
			if c.IsRevealed() && c.content.adjacent == 0 {
				after.neighbors(i, func(j int) {
					require.True(t, after.cells[j].IsRevealed(),
						"neighbor %d of open empty cell %d is hidden", j, i)
				})
			}
			if c.IsRevealed() && i != start {
				touchesEmpty := false
				after.neighbors(i, func(j int) {
					n := after.cells[j]
					touchesEmpty = touchesEmpty || (n.IsRevealed() && n.content.adjacent == 0 && !n.IsMine())
				})
				require.True(t, touchesEmpty, "cell %d opened without an open empty neighbor", i)
			}
		}
	}
}

func TestRevealOutOfBounds(t *testing.T) {
	g := cornerMineGame(t)
	for _, p := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		_, err := g.Reveal(p.Row, p.Column)
		assert.ErrorIs(t, err, ErrOutOfBounds, "point %v", p)

		var boundsErr OutOfBoundsError
		require.ErrorAs(t, err, &boundsErr)
		assert.Equal(t, p.Row, boundsErr.Row)
		assert.Equal(t, p.Column, boundsErr.Column)

		_, err = g.Flag(p.Row, p.Column)
		assert.ErrorIs(t, err, ErrOutOfBounds)
		_, err = g.Unflag(p.Row, p.Column)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	}
}

func TestFinishedGameIgnoresActions(t *testing.T) {
	for _, g := range []Game{
		play(t, cornerMineGame(t), reveal(0, 2)),
		play(t, cornerMineGame(t), reveal(2, 0)),
	} {
		require.True(t, g.IsFinished())

		for _, action := range []func() (Change, error){
			func() (Change, error) { return g.Reveal(0, 0) },
			func() (Change, error) { return g.Flag(0, 0) },
			func() (Change, error) { return g.Unflag(0, 0) },
			func() (Change, error) { return g.Reveal(10, 10) },
		} {
			change, err := action()
			assert.NoError(t, err)
			assert.True(t, change.HasNoChanges())
		}
		assert.True(t, g.Pause().HasNoChanges())
	}
}

func TestFlagRoundTrip(t *testing.T) {
	g := play(t, cornerMineGame(t), reveal(1, 1))

	flagged := play(t, g, flag(0, 0))
	cell, _ := flagged.Board.Cell(0, 0)
	assert.True(t, cell.IsFlagged())

	change, err := flagged.Unflag(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Playing, change.Status)
	assert.True(t, g.Board.Equal(change.Board))
	assert.Equal(t, g.Board.Codes(), change.Board.Codes())
}

func TestFlagNoOps(t *testing.T) {
	g := play(t, cornerMineGame(t), reveal(1, 1))
	g = play(t, g, flag(0, 0))

	tests := []struct {
		name   string
		action func() (Change, error)
	}{
		{"flag revealed", func() (Change, error) { return g.Flag(1, 1) }},
		{"flag flagged", func() (Change, error) { return g.Flag(0, 0) }},
		{"unflag revealed", func() (Change, error) { return g.Unflag(1, 1) }},
		{"unflag hidden", func() (Change, error) { return g.Unflag(2, 2) }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			change, err := test.action()
			require.NoError(t, err)
			assert.True(t, change.HasNoChanges())
		})
	}
}

func TestFlagNeverEndsGame(t *testing.T) {
	g := newTestGame(t, 1, 2, Point{0, 1})
	g = play(t, g, flag(0, 1))
	assert.Equal(t, Playing, g.Status)
	g = play(t, g, flag(0, 0))
	assert.Equal(t, Playing, g.Status)
}

func TestFirstActionStartsPlaying(t *testing.T) {
	g := play(t, cornerMineGame(t), flag(0, 0))
	assert.Equal(t, Playing, g.Status)
}

func TestPause(t *testing.T) {
	g := cornerMineGame(t)
	assert.True(t, g.Pause().HasNoChanges(), "created games cannot be paused")

	g = play(t, g, reveal(1, 1))
	require.True(t, g.CanBePaused())

	change := g.Pause()
	require.False(t, change.HasNoChanges())
	assert.Equal(t, Paused, change.Status)
	assert.Same(t, g.Board, change.Board)

	paused := g.Apply(change, testNow)
	assert.Equal(t, Paused, paused.Status)
	assert.Nil(t, paused.FinishedAt)
	assert.True(t, paused.Pause().HasNoChanges())

	resumed := play(t, paused, flag(0, 0))
	assert.Equal(t, Playing, resumed.Status)
}

func TestParseStatus(t *testing.T) {
	for _, s := range []Status{Created, Playing, Paused, Won, Loose} {
		parsed, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := ParseStatus("LOST")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
