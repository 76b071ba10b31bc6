package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vancomm/minesweeper-server/internal/mines"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Queries is the Postgres store. *pgxpool.Pool and pgx.Tx both satisfy DBTX.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// UpdateFunc computes the next snapshot of a locked game. Returning nil
// means nothing changed and nothing is written.
type UpdateFunc func(game mines.Game) (*mines.Game, error)

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// period is one stretch of active play.
type period struct {
	startedAt  time.Time
	finishedAt *time.Time
}

func (p period) duration(now time.Time) time.Duration {
	if p.finishedAt != nil {
		return p.finishedAt.Sub(p.startedAt)
	}
	return now.Sub(p.startedAt)
}
