package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Account struct {
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (q *Queries) CreateAccount(ctx context.Context, email string, passwordHash []byte) (*Account, error) {
	rows, _ := q.db.Query(
		ctx,
		"INSERT INTO account (email, password_hash) VALUES ($1, $2) RETURNING *",
		email,
		passwordHash,
	)
	account, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Account])
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return nil, ErrEmailTaken
	}
	return account, err
}

func (q *Queries) FetchAccount(ctx context.Context, email string) (*Account, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM account WHERE email = $1", email,
	)
	account, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Account])
	return account, notFound(err)
}
