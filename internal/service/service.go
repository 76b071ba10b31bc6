package service

import (
	"context"
	"errors"
	"time"

	"github.com/vancomm/minesweeper-server/internal/mines"
	"github.com/vancomm/minesweeper-server/internal/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrEmailTaken         = repository.ErrEmailTaken
	ErrForbidden          = errors.New("game belongs to another account")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrBadCredentials     = errors.New("email and password must not be empty")
)

// GameStore persists games. Both *repository.Queries and
// *repository.Memory implement it.
type GameStore interface {
	CreateGame(ctx context.Context, owner string, board *mines.Board, now time.Time) (mines.Game, error)
	FetchGame(ctx context.Context, gameID int64) (mines.Game, error)
	ListGames(ctx context.Context, owner string) ([]mines.Game, error)
	UpdateGame(ctx context.Context, gameID int64, now time.Time, fn repository.UpdateFunc) (mines.Game, error)
}

type AccountStore interface {
	CreateAccount(ctx context.Context, email string, passwordHash []byte) (*repository.Account, error)
	FetchAccount(ctx context.Context, email string) (*repository.Account, error)
}

type HighscoreStore interface {
	GetHighscores(ctx context.Context, filter repository.HighscoreFilter) ([]repository.Highscore, error)
}

// Store is everything the HTTP layer needs from storage.
type Store interface {
	GameStore
	AccountStore
	HighscoreStore
}
