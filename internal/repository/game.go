package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper-server/internal/mines"
)

type gameRow struct {
	GameID     int64      `db:"game_id"`
	Owner      string     `db:"owner"`
	Status     string     `db:"status"`
	CreatedAt  time.Time  `db:"created_at"`
	FinishedAt *time.Time `db:"finished_at"`
	Rows       int32      `db:"rows"`
	Columns    int32      `db:"columns"`
	Board      []int16    `db:"board"`
	PlayTimeMs int64      `db:"play_time_ms"`
}

func (r gameRow) game() (mines.Game, error) {
	status, err := mines.ParseStatus(r.Status)
	if err != nil {
		return mines.Game{}, fmt.Errorf("game %d: %w", r.GameID, err)
	}
	codes := make([]mines.Code, len(r.Board))
	for i, code := range r.Board {
		codes[i] = mines.Code(code)
	}
	board, err := mines.BoardFromCodes(int(r.Rows), int(r.Columns), codes)
	if err != nil {
		return mines.Game{}, fmt.Errorf("game %d: %w", r.GameID, err)
	}
	return mines.Game{
		ID:         r.GameID,
		Owner:      r.Owner,
		Status:     status,
		CreatedAt:  r.CreatedAt,
		FinishedAt: r.FinishedAt,
		PlayTime:   time.Duration(r.PlayTimeMs) * time.Millisecond,
		Board:      board,
	}, nil
}

func boardArg(b *mines.Board) []int16 {
	codes := b.Codes()
	arg := make([]int16, len(codes))
	for i, code := range codes {
		arg[i] = int16(code)
	}
	return arg
}

const selectGame = `
	SELECT
		g.game_id,
		g.owner,
		g.status,
		g.created_at,
		g.finished_at,
		g."rows",
		g."columns",
		g.board,
		coalesce((
			SELECT sum(extract('epoch' FROM coalesce(p.finished_at, now()) - p.started_at))
			FROM play_time p
			WHERE p.game_id = g.game_id
		) * 1000, 0)::bigint play_time_ms
	FROM game g
`

func collectGame(rows pgx.Rows) (mines.Game, error) {
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[gameRow])
	if err != nil {
		return mines.Game{}, notFound(err)
	}
	return row.game()
}

func (q *Queries) CreateGame(
	ctx context.Context, owner string, board *mines.Board, now time.Time,
) (mines.Game, error) {
	var gameID int64
	err := q.db.QueryRow(
		ctx,
		`INSERT INTO game (owner, status, created_at, "rows", "columns", mines, board)
		VALUES (@owner, @status, @created_at, @rows, @columns, @mines, @board)
		RETURNING game_id`,
		pgx.NamedArgs{
			"owner":      owner,
			"status":     string(mines.Created),
			"created_at": now,
			"rows":       board.Rows(),
			"columns":    board.Columns(),
			"mines":      board.Mines(),
			"board":      boardArg(board),
		},
	).Scan(&gameID)
	if err != nil {
		return mines.Game{}, err
	}
	return q.FetchGame(ctx, gameID)
}

func (q *Queries) FetchGame(ctx context.Context, gameID int64) (mines.Game, error) {
	rows, _ := q.db.Query(ctx, selectGame+" WHERE g.game_id = $1", gameID)
	return collectGame(rows)
}

func (q *Queries) ListGames(ctx context.Context, owner string) ([]mines.Game, error) {
	rows, err := q.db.Query(
		ctx, selectGame+" WHERE g.owner = $1 ORDER BY g.created_at, g.game_id", owner,
	)
	if err != nil {
		return nil, err
	}
	gameRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[gameRow])
	if err != nil {
		return nil, err
	}
	games := make([]mines.Game, 0, len(gameRows))
	for _, row := range gameRows {
		game, err := row.game()
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}

// UpdateGame runs fn while holding a row lock on the game, so actions on
// the same game are applied one at a time.
func (q *Queries) UpdateGame(
	ctx context.Context, gameID int64, now time.Time, fn UpdateFunc,
) (game mines.Game, err error) {
	err = pgx.BeginFunc(ctx, q.db, func(tx pgx.Tx) error {
		var locked int64
		err := tx.QueryRow(
			ctx, "SELECT game_id FROM game WHERE game_id = $1 FOR UPDATE", gameID,
		).Scan(&locked)
		if err != nil {
			return notFound(err)
		}

		txq := New(tx)
		current, err := txq.FetchGame(ctx, gameID)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if next == nil {
			game = current
			return nil
		}

		if err := txq.writeGame(ctx, *next, now); err != nil {
			return err
		}
		game, err = txq.FetchGame(ctx, gameID)
		return err
	})
	return game, err
}

func (q *Queries) writeGame(ctx context.Context, game mines.Game, now time.Time) error {
	_, err := q.db.Exec(
		ctx,
		`UPDATE game
		SET status = @status, finished_at = @finished_at, board = @board
		WHERE game_id = @game_id`,
		pgx.NamedArgs{
			"game_id":     game.ID,
			"status":      string(game.Status),
			"finished_at": game.FinishedAt,
			"board":       boardArg(game.Board),
		},
	)
	if err != nil {
		return err
	}

	if game.Status == mines.Playing {
		_, err = q.db.Exec(
			ctx,
			`INSERT INTO play_time (game_id, started_at)
			SELECT $1, $2
			WHERE NOT EXISTS (
				SELECT 1 FROM play_time WHERE game_id = $1 AND finished_at IS NULL
			)`,
			game.ID, now,
		)
	} else {
		_, err = q.db.Exec(
			ctx,
			"UPDATE play_time SET finished_at = $2 WHERE game_id = $1 AND finished_at IS NULL",
			game.ID, now,
		)
	}
	return err
}
