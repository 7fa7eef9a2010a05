package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
	"github.com/vancomm/minesweeper/internal/session"
)

type GameHandler struct {
	log      *logrus.Logger
	sessions *repository.Sessions
	upgrader websocket.Upgrader
	defaults config.Game
}

func NewGameHandler(
	log *logrus.Logger,
	sessions *repository.Sessions,
	defaults config.Game,
) *GameHandler {
	return &GameHandler{
		log:      log,
		sessions: sessions,
		defaults: defaults,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (g GameHandler) lookup(w http.ResponseWriter, r *http.Request) (*repository.GameSession, bool) {
	gs, err := g.sessions.Get(r.PathValue("id"))
	if errors.Is(err, repository.ErrNotFound) {
		sendErrorOrLog(w, g.log, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to fetch session")
		return nil, false
	}
	return gs, true
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateNewGameDTO(r.URL.Query(), CreateNewGameDTO{
		Size:      g.defaults.Size,
		MineCount: g.defaults.MineCount,
		Seed:      g.defaults.Seed,
	})
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	params := mines.Params{Size: dto.Size, MineCount: dto.MineCount}
	if err := g.defaults.CheckParams(params); err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	cfg := session.Config{Params: params, Layout: g.defaults.Layout()}
	game, err := session.New(cfg, mines.NewRand(dto.Seed), nil, g.log)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to create a new game")
		return
	}

	gs := g.sessions.Create(game)
	g.log.WithFields(logrus.Fields{
		"id":     gs.ID,
		"params": params.String(),
	}).Debug("created game session")

	sendJSONOrLog(w, g.log, snapshot(gs, nil))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	gs, ok := g.lookup(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.log, snapshot(gs, nil))
}

func (g GameHandler) Click(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseClickDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	p, err := dto.Point()
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	button, err := ParseButton(dto.Button)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	gs, ok := g.lookup(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.log, snapshot(gs, func(s *session.Session) {
		s.Click(p, button)
	}))
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	gs, ok := g.lookup(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.log, snapshot(gs, func(s *session.Session) {
		s.Forfeit()
	}))
}
