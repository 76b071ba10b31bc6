package handlers

import (
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper-server/internal/config"
	"github.com/vancomm/minesweeper-server/internal/mines"
	"github.com/vancomm/minesweeper-server/internal/service"
)

type GameHandler struct {
	logger *slog.Logger
	games  *service.Games
	ws     *config.WebSocket
}

func NewGameHandler(
	logger *slog.Logger,
	games *service.Games,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		logger: logger,
		games:  games,
		ws:     ws,
	}
}

func (g GameHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, err := accountEmail(r)
	if err != nil {
		SendErrorOrLog(w, g.logger, err)
		return
	}
	games, err := g.games.List(r.Context(), owner)
	if err != nil {
		SendErrorOrLog(w, g.logger, err)
		return
	}
	SendJSONOrLog(w, g.logger, http.StatusOK, NewGameDTOs(games))
}

func (g GameHandler) CreateLevel(w http.ResponseWriter, r *http.Request) {
	owner, err := accountEmail(r)
	if err != nil {
		SendErrorOrLog(w, g.logger, err)
		return
	}
	level, err := mines.ParseLevel(r.PathValue("level"))
	if err != nil {
		SendErrorOrLog(w, g.logger, err)
		return
	}
	game, err := g.games.CreateLevel(r.Context(), owner, level)
	if err != nil {
		SendErrorOrLog(w, g.logger, err)
		return
	}
	SendJSONOrLog(w, g.logger, http.StatusCreated, NewGameDTO(game))
}

func (g GameHandler) CreateCustom(w http.ResponseWriter, r *http.Request) {
	owner, err := accountEmail(r)
	if err != nil {
		SendErrorOrLog(w, g.logger, err)
		return
	}
	params, err := ParseCustomGameParams(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, err)
		return
	}
	game, err := g.games.Create(r.Context(), owner, params.Rows, params.Columns, params.Mines)
	if err != nil {
		SendErrorOrLog(w, g.logger, err)
		return
	}
	SendJSONOrLog(w, g.logger, http.StatusCreated, NewGameDTO(game))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	owner, err := accountEmail(r)
	if err != nil {
		SendErrorOrLog(w, g.logger, err)
		return
	}
	gameID, err := parseGameID(r)
	if err != nil {
		SendErrorOrLog(w, g.logger, err)
		return
	}
	game, err := g.games.Fetch(r.Context(), owner, gameID)
	if err != nil {
		SendErrorOrLog(w, g.logger, err)
		return
	}
	SendJSONOrLog(w, g.logger, http.StatusOK, NewGameDTO(game))
}

func (g GameHandler) play(w http.ResponseWriter, r *http.Request, action service.Action) {
	owner, err := accountEmail(r)
	if err != nil {
		SendErrorOrLog(w, g.logger, err)
		return
	}
	gameID, err := parseGameID(r)
	if err != nil {
		SendErrorOrLog(w, g.logger, err)
		return
	}
	game, err := g.games.Play(r.Context(), owner, gameID, action)
	if err != nil {
		SendErrorOrLog(w, g.logger, err)
		return
	}
	SendJSONOrLog(w, g.logger, http.StatusOK, NewGameDTO(game))
}

func (g GameHandler) cellAction(
	move func(row, column int) service.Action,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cell, err := ParseCellParams(r)
		if err != nil {
			SendErrorOrLog(w, g.logger, err)
			return
		}
		g.play(w, r, move(cell.Row, cell.Column))
	}
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	g.cellAction(service.Reveal)(w, r)
}

func (g GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	g.cellAction(service.Flag)(w, r)
}

func (g GameHandler) Unflag(w http.ResponseWriter, r *http.Request) {
	g.cellAction(service.Unflag)(w, r)
}

func (g GameHandler) Pause(w http.ResponseWriter, r *http.Request) {
	g.play(w, r, service.Pause)
}
