package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vancomm/minesweeper-server/internal/mines"
	"github.com/vancomm/minesweeper-server/internal/repository"
	"github.com/vancomm/minesweeper-server/internal/service"
)

type CustomGameParams struct {
	Rows    int `schema:"rows,required"`
	Columns int `schema:"columns,required"`
	Mines   int `schema:"mines,required"`
}

func ParseCustomGameParams(src map[string][]string) (CustomGameParams, error) {
	var params CustomGameParams
	err := decoder.Decode(&params, src)
	return params, err
}

type CellParams struct {
	Row    int `schema:"row,required"`
	Column int `schema:"column,required"`
}

func ParseCellParams(r *http.Request) (CellParams, error) {
	var params CellParams
	err := decoder.Decode(&params, map[string][]string{
		"row":    {r.PathValue("row")},
		"column": {r.PathValue("column")},
	})
	return params, err
}

// MaxHighscores caps the rows returned by one highscores request.
const MaxHighscores = 100

type HighscoreParams struct {
	Level string `schema:"level"`
	Mine  bool   `schema:"mine"`
	Limit int    `schema:"limit"`
}

func ParseHighscoreParams(src map[string][]string) (HighscoreParams, error) {
	var params HighscoreParams
	err := decoder.Decode(&params, src)
	if params.Limit <= 0 || params.Limit > MaxHighscores {
		params.Limit = MaxHighscores
	}
	return params, err
}

func parseGameID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid game id %q", service.ErrNotFound, r.PathValue("id"))
	}
	return id, nil
}

type GameDTO struct {
	ID         int64        `json:"id"`
	Status     mines.Status `json:"status"`
	Creation   int64        `json:"creation"`
	FinishedAt *int64       `json:"finished_at,omitempty"`
	PlayTimeMs int64        `json:"play_time_ms"`
	Rows       int          `json:"rows"`
	Columns    int          `json:"columns"`
	Mines      int          `json:"mines"`
	Board      []string     `json:"board"`
}

func NewGameDTO(g mines.Game) GameDTO {
	var finishedAt *int64
	if g.FinishedAt != nil {
		f := g.FinishedAt.UnixMilli()
		finishedAt = &f
	}
	grid := g.Grid()
	board := make([]string, len(grid))
	for i, row := range grid {
		board[i] = string(row)
	}
	return GameDTO{
		ID:         g.ID,
		Status:     g.Status,
		Creation:   g.CreatedAt.UnixMilli(),
		FinishedAt: finishedAt,
		PlayTimeMs: g.PlayTime.Milliseconds(),
		Rows:       g.Board.Rows(),
		Columns:    g.Board.Columns(),
		Mines:      g.Board.Mines(),
		Board:      board,
	}
}

func NewGameDTOs(games []mines.Game) []GameDTO {
	dtos := make([]GameDTO, len(games))
	for i, g := range games {
		dtos[i] = NewGameDTO(g)
	}
	return dtos
}

// HighscoreDTO leaves out the owner's email; Mine marks the caller's own
// games.
type HighscoreDTO struct {
	GameID     int64 `json:"game_id"`
	Rows       int   `json:"rows"`
	Columns    int   `json:"columns"`
	Mines      int   `json:"mines"`
	PlayTimeMs int64 `json:"play_time_ms"`
	Mine       bool  `json:"mine"`
}

func NewHighscoreDTOs(scores []repository.Highscore, caller string) []HighscoreDTO {
	dtos := make([]HighscoreDTO, len(scores))
	for i, s := range scores {
		dtos[i] = HighscoreDTO{
			GameID:     s.GameID,
			Rows:       s.Rows,
			Columns:    s.Columns,
			Mines:      s.Mines,
			PlayTimeMs: s.PlayTimeMs,
			Mine:       caller != "" && s.Owner == caller,
		}
	}
	return dtos
}
