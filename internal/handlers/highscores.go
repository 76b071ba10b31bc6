package handlers

import (
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper-server/internal/mines"
	"github.com/vancomm/minesweeper-server/internal/repository"
	"github.com/vancomm/minesweeper-server/internal/service"
)

type Highscores struct {
	logger *slog.Logger
	store  service.HighscoreStore
}

func NewHighscores(logger *slog.Logger, store service.HighscoreStore) *Highscores {
	return &Highscores{logger: logger, store: store}
}

// List is public. Owners are never exposed; mine=true narrows the list to
// the caller's games and needs a token.
func (h Highscores) List(w http.ResponseWriter, r *http.Request) {
	params, err := ParseHighscoreParams(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, h.logger, err)
		return
	}

	caller, _ := accountEmail(r)
	filter := repository.HighscoreFilter{Limit: params.Limit}
	if params.Mine {
		if caller == "" {
			SendErrorOrLog(w, h.logger, ErrUnauthorized)
			return
		}
		filter.Owner = &caller
	}
	if params.Level != "" {
		level, err := mines.ParseLevel(params.Level)
		if err != nil {
			SendErrorOrLog(w, h.logger, err)
			return
		}
		filter.Level = &level
	}

	scores, err := h.store.GetHighscores(r.Context(), filter)
	if err != nil {
		SendErrorOrLog(w, h.logger, err)
		return
	}
	SendJSONOrLog(w, h.logger, http.StatusOK, NewHighscoreDTOs(scores, caller))
}
