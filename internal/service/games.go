package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vancomm/minesweeper-server/internal/mines"
)

// MaxDimension bounds the rows and columns of custom games.
const MaxDimension = 100

// Action is one player move on a game snapshot.
type Action func(game mines.Game) (mines.Change, error)

func Reveal(row, column int) Action {
	return func(g mines.Game) (mines.Change, error) { return g.Reveal(row, column) }
}

func Flag(row, column int) Action {
	return func(g mines.Game) (mines.Change, error) { return g.Flag(row, column) }
}

func Unflag(row, column int) Action {
	return func(g mines.Game) (mines.Change, error) { return g.Unflag(row, column) }
}

func Pause(g mines.Game) (mines.Change, error) {
	return g.Pause(), nil
}

type Games struct {
	logger *slog.Logger
	store  GameStore
	rnd    mines.Rand
	now    func() time.Time
}

func NewGames(logger *slog.Logger, store GameStore, rnd mines.Rand, now func() time.Time) *Games {
	if now == nil {
		now = time.Now
	}
	return &Games{
		logger: logger,
		store:  store,
		rnd:    rnd,
		now:    now,
	}
}

func (s *Games) List(ctx context.Context, owner string) ([]mines.Game, error) {
	return s.store.ListGames(ctx, owner)
}

func (s *Games) Create(ctx context.Context, owner string, rows, columns, count int) (mines.Game, error) {
	if rows > MaxDimension || columns > MaxDimension {
		return mines.Game{}, fmt.Errorf(
			"%w: at most %dx%d", mines.ErrInvalidDimension, MaxDimension, MaxDimension,
		)
	}
	board, err := mines.Generate(rows, columns, count, s.rnd)
	if err != nil {
		return mines.Game{}, err
	}

	game, err := s.store.CreateGame(ctx, owner, board, s.now())
	if err != nil {
		return mines.Game{}, err
	}

	s.logger.Info(
		"created game",
		slog.Int64("game_id", game.ID),
		slog.String("owner", owner),
		slog.Int("rows", rows),
		slog.Int("columns", columns),
		slog.Int("mines", count),
	)
	if s.logger.Enabled(ctx, slog.LevelDebug) {
		s.logger.Debug(
			"generated board",
			slog.Int64("game_id", game.ID),
			slog.String("board", "\n"+mines.RenderASCII(board, false)),
			slog.String("solution", "\n"+mines.RenderASCII(board, true)),
		)
	}
	return game, nil
}

func (s *Games) CreateLevel(ctx context.Context, owner string, level mines.Level) (mines.Game, error) {
	return s.Create(ctx, owner, level.Rows, level.Columns, level.Mines)
}

func (s *Games) Fetch(ctx context.Context, owner string, gameID int64) (mines.Game, error) {
	game, err := s.store.FetchGame(ctx, gameID)
	if err != nil {
		return mines.Game{}, err
	}
	if game.Owner != owner {
		return mines.Game{}, ErrForbidden
	}
	return game, nil
}

// Play applies action to the game while the store holds it locked. Actions
// that change nothing leave the stored game untouched.
func (s *Games) Play(ctx context.Context, owner string, gameID int64, action Action) (mines.Game, error) {
	now := s.now()
	var finished bool
	game, err := s.store.UpdateGame(ctx, gameID, now, func(game mines.Game) (*mines.Game, error) {
		if game.Owner != owner {
			return nil, ErrForbidden
		}
		change, err := action(game)
		if err != nil {
			return nil, err
		}
		if change.HasNoChanges() {
			return nil, nil
		}
		next := game.Apply(change, now)
		finished = next.IsFinished()
		return &next, nil
	})
	if err != nil {
		return mines.Game{}, err
	}

	if finished {
		s.logger.Info(
			"game finished",
			slog.Int64("game_id", game.ID),
			slog.String("owner", owner),
			slog.String("status", game.Status.String()),
			slog.Duration("play_time", game.PlayTime),
		)
	}
	return game, nil
}
