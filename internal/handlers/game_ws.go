package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-server/internal/service"
)

var ErrBadCommand = errors.New("bad command")

var cellCommands = map[string]func(row, column int) service.Action{
	"reveal": service.Reveal,
	"flag":   service.Flag,
	"unflag": service.Unflag,
}

// parseCommand reads one line of the websocket protocol. A nil action
// means fetch.
func parseCommand(line string) (service.Action, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadCommand)
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "fetch":
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: fetch takes no arguments", ErrBadCommand)
		}
		return nil, nil
	case "pause":
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: pause takes no arguments", ErrBadCommand)
		}
		return service.Pause, nil
	}

	move, ok := cellCommands[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown command %q", ErrBadCommand, name)
	}
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: %s takes a row and a column", ErrBadCommand, name)
	}
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: row must be an int", ErrBadCommand)
	}
	column, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("%w: column must be an int", ErrBadCommand)
	}
	return move(row, column), nil
}

func (g GameHandler) execute(ctx context.Context, owner string, gameID int64, line string) (any, error) {
	action, err := parseCommand(line)
	if err != nil {
		return wrapError(err), nil
	}
	if action == nil {
		game, err := g.games.Fetch(ctx, owner, gameID)
		if err != nil {
			return nil, err
		}
		return NewGameDTO(game), nil
	}
	game, err := g.games.Play(ctx, owner, gameID, action)
	if err != nil {
		return nil, err
	}
	return NewGameDTO(game), nil
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
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
	if _, err := g.games.Fetch(r.Context(), owner, gameID); err != nil {
		SendErrorOrLog(w, g.logger, err)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()

	g.logger.Debug("established ws connection", slog.Int64("game_id", gameID))

	if err := g.wsLoop(r.Context(), conn, owner, gameID); err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return
		}
		g.logger.Warn("abnormal ws break", slog.Any("error", err))
	}
}

func (g GameHandler) wsLoop(ctx context.Context, conn *websocket.Conn, owner string, gameID int64) error {
	for {
		if err := conn.SetReadDeadline(time.Now().Add(g.ws.IdleWait)); err != nil {
			return err
		}
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		for _, line := range strings.Split(strings.TrimSpace(string(buf)), "\n") {
			g.logger.Debug("ws command", slog.Int64("game_id", gameID), slog.String("command", line))

			reply, err := g.execute(ctx, owner, gameID, line)
			if err != nil {
				if errorStatus(err) == http.StatusInternalServerError {
					return err
				}
				reply = wrapError(err)
			}

			if err := conn.SetWriteDeadline(time.Now().Add(g.ws.WriteWait)); err != nil {
				return err
			}
			if err := conn.WriteJSON(reply); err != nil {
				return fmt.Errorf("unable to write json: %w", err)
			}
		}
	}
}
