package app

import (
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.logger, a.store, a.repo, a.tokens, a.ws, a.board,
	)

	base := config.BasePath()

	a.router.HandleFunc("POST "+base+"/game", game.NewGame)
	a.router.HandleFunc("GET "+base+"/game/{id}", game.Fetch)
	a.router.HandleFunc("POST "+base+"/game/{id}/move", game.MakeAMove)
	a.router.HandleFunc("POST "+base+"/game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("GET "+base+"/game/{id}/connect", game.ConnectWS)
	a.router.HandleFunc("GET "+base+"/presets", game.Presets)
	a.router.HandleFunc("GET "+base+"/highscores", game.Highscores)
}
