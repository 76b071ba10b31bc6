// custom query
package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper-server/internal/mines"
)

type Highscore struct {
	GameID     int64  `json:"game_id" db:"game_id"`
	Owner      string `json:"owner" db:"owner"`
	Rows       int    `json:"rows" db:"rows"`
	Columns    int    `json:"columns" db:"columns"`
	Mines      int    `json:"mines" db:"mines"`
	PlayTimeMs int64  `json:"play_time_ms" db:"play_time_ms"`
}

type HighscoreFilter struct {
	Owner *string
	Level *mines.Level
	Limit int
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Owner != nil {
		clauses = append(clauses, "owner = @owner")
		args["owner"] = *f.Owner
	}
	if f.Level != nil {
		clauses = append(
			clauses,
			`"rows" = @rows`,
			`"columns" = @columns`,
			"mines = @mines",
		)
		args["rows"] = f.Level.Rows
		args["columns"] = f.Level.Columns
		args["mines"] = f.Level.Mines
	}
	return strings.Join(clauses, " AND "), args
}

// GetHighscores lists won games, fastest first.
func (q *Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT * FROM (
		SELECT
			g.game_id,
			g.owner,
			g."rows",
			g."columns",
			g.mines,
			coalesce((
				SELECT sum(extract('epoch' FROM p.finished_at - p.started_at))
				FROM play_time p
				WHERE p.game_id = g.game_id
			) * 1000, 0)::bigint play_time_ms
		FROM game g
		WHERE g.status = 'WON'
	) won
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	query += " ORDER BY play_time_ms, game_id"

	if filter.Limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = filter.Limit
	}

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
