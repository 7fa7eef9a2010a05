package app

import (
	"github.com/vancomm/minesweeper/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.log, a.sessions, a.config.Game)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/click", game.Click)
	a.router.HandleFunc("POST /game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("/game/{id}/connect", game.ConnectWS)
}
