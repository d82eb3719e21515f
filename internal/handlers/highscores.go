package handlers

import (
	"errors"
	"net/http"

	"github.com/vancomm/minesweeper-engine/internal/repository"
)

var ErrNoDatabase = errors.New("highscores are not available")

type HighscoresDTO struct {
	NewGameDTO
	Limit int `schema:"limit"`
}

func (g GameHandler) Highscores(w http.ResponseWriter, r *http.Request) {
	if g.repo == nil {
		SendErrorOrLog(w, g.logger, http.StatusServiceUnavailable, ErrNoDatabase)
		return
	}

	var dto HighscoresDTO
	if err := decoder.Decode(&dto, r.URL.Query()); err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	filter := repository.HighscoreFilter{Limit: 100}
	if dto.Limit > 0 && dto.Limit < filter.Limit {
		filter.Limit = dto.Limit
	}
	if dto.Preset != "" || dto.Width != 0 {
		params, err := dto.Params(g.board)
		if err != nil {
			SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
			return
		}
		filter.Params = &params
	}

	highscores, err := g.repo.GetHighscores(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch highscores", "error", err)
		return
	}

	SendJSONOrLog(w, g.logger, highscores)
}
