package service

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/minesweeper-server/internal/mines"
	"github.com/vancomm/minesweeper-server/internal/repository"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newGames(t *testing.T) (*Games, *repository.Memory) {
	t.Helper()
	now := func() time.Time { return testNow }
	store := repository.NewMemory(now)
	return NewGames(testLogger(), store, rand.New(rand.NewPCG(1, 2)), now), store
}

// cornerGame stores a 3x3 game with a single mine at 0:2.
func cornerGame(t *testing.T, store *repository.Memory, owner string) mines.Game {
	t.Helper()
	board, err := mines.NewBoard(3, 3, []mines.Point{{Row: 0, Column: 2}})
	require.NoError(t, err)
	game, err := store.CreateGame(context.Background(), owner, board, testNow)
	require.NoError(t, err)
	return game
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	games, _ := newGames(t)

	game, err := games.CreateLevel(ctx, "a", mines.Beginner)
	require.NoError(t, err)
	assert.Equal(t, mines.Created, game.Status)
	assert.Equal(t, "a", game.Owner)
	assert.Equal(t, 8, game.Board.Rows())
	assert.Equal(t, 10, game.Board.Mines())

	custom, err := games.Create(ctx, "a", 5, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, custom.Board.Columns())

	listed, err := games.List(ctx, "a")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, game.ID, listed[0].ID)
}

func TestCreateRejects(t *testing.T) {
	ctx := context.Background()
	games, _ := newGames(t)

	_, err := games.Create(ctx, "a", 0, 5, 1)
	assert.ErrorIs(t, err, mines.ErrInvalidDimension)
	_, err = games.Create(ctx, "a", MaxDimension+1, 5, 1)
	assert.ErrorIs(t, err, mines.ErrInvalidDimension)
	_, err = games.Create(ctx, "a", 2, 2, 4)
	assert.ErrorIs(t, err, mines.ErrInvalidMineCount)
}

func TestFetchChecksOwner(t *testing.T) {
	ctx := context.Background()
	games, store := newGames(t)
	game := cornerGame(t, store, "a")

	fetched, err := games.Fetch(ctx, "a", game.ID)
	require.NoError(t, err)
	assert.Equal(t, game.ID, fetched.ID)

	_, err = games.Fetch(ctx, "b", game.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = games.Fetch(ctx, "a", game.ID+1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlay(t *testing.T) {
	ctx := context.Background()
	games, store := newGames(t)
	game := cornerGame(t, store, "a")

	game, err := games.Play(ctx, "a", game.ID, Flag(0, 2))
	require.NoError(t, err)
	assert.Equal(t, mines.Playing, game.Status)

	game, err = games.Play(ctx, "a", game.ID, Pause)
	require.NoError(t, err)
	assert.Equal(t, mines.Paused, game.Status)

	game, err = games.Play(ctx, "a", game.ID, Unflag(0, 2))
	require.NoError(t, err)
	assert.Equal(t, mines.Playing, game.Status)

	game, err = games.Play(ctx, "a", game.ID, Reveal(2, 0))
	require.NoError(t, err)
	assert.Equal(t, mines.Won, game.Status)
	require.NotNil(t, game.FinishedAt)

	stored, err := store.FetchGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, mines.Won, stored.Status)
	assert.Equal(t, game.Board.Codes(), stored.Board.Codes())
}

func TestPlayErrors(t *testing.T) {
	ctx := context.Background()
	games, store := newGames(t)
	game := cornerGame(t, store, "a")

	_, err := games.Play(ctx, "b", game.ID, Reveal(0, 0))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = games.Play(ctx, "a", game.ID, Reveal(3, 0))
	assert.ErrorIs(t, err, mines.ErrOutOfBounds)

	_, err = games.Play(ctx, "a", game.ID+1, Reveal(0, 0))
	assert.ErrorIs(t, err, ErrNotFound)

	stored, err := store.FetchGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, mines.Created, stored.Status)
}

func TestPlayNoChanges(t *testing.T) {
	ctx := context.Background()
	games, store := newGames(t)
	game := cornerGame(t, store, "a")

	unchanged, err := games.Play(ctx, "a", game.ID, Pause)
	require.NoError(t, err)
	assert.Equal(t, mines.Created, unchanged.Status)

	lost, err := games.Play(ctx, "a", game.ID, Reveal(0, 2))
	require.NoError(t, err)
	assert.Equal(t, mines.Loose, lost.Status)

	after, err := games.Play(ctx, "a", game.ID, Reveal(2, 0))
	require.NoError(t, err)
	assert.Equal(t, lost.Board.Codes(), after.Board.Codes())
	assert.Equal(t, mines.Loose, after.Status)
}

func TestAccounts(t *testing.T) {
	ctx := context.Background()
	accounts := NewAccounts(testLogger(), repository.NewMemory(nil), bcrypt.MinCost)

	_, err := accounts.Register(ctx, "", "secret")
	assert.ErrorIs(t, err, ErrBadCredentials)

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'x'
	}
	_, err = accounts.Register(ctx, "a@example.com", string(long))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	account, err := accounts.Register(ctx, "a@example.com", "secret")
	require.NoError(t, err)
	assert.NotEqual(t, []byte("secret"), account.PasswordHash)

	_, err = accounts.Register(ctx, "a@example.com", "secret")
	assert.ErrorIs(t, err, ErrEmailTaken)

	authenticated, err := accounts.Authenticate(ctx, "a@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", authenticated.Email)

	_, err = accounts.Authenticate(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = accounts.Authenticate(ctx, "b@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
