package handlers

import (
	"errors"
	"iter"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0, // get
	"o": 2, // primary click at pixel X Y
	"f": 2, // secondary click at pixel X Y
	"r": 0, // forfeit
}

func parsePoint(twoStrings []string) (mines.Point, error) {
	x, err := strconv.Atoi(twoStrings[0])
	if err != nil {
		return mines.Point{}, errors.New("first argument must be an int")
	}
	y, err := strconv.Atoi(twoStrings[1])
	if err != nil {
		return mines.Point{}, errors.New("second argument must be an int")
	}
	return mines.NewPoint(x, y)
}

func executeCommand(s *session.Session, c string) error {
	parts := strings.Split(c, " ")
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return errors.New("invalid number of arguments")
	}
	switch parts[0] {
	case "o", "f":
		p, err := parsePoint(parts[1:])
		if err != nil {
			return err
		}
		button := session.Primary
		if parts[0] == "f" {
			button = session.Secondary
		}
		s.Click(p, button)
	case "r":
		s.Forfeit()
	}
	return nil
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	gs, ok := g.lookup(w, r)
	if !ok {
		return
	}

	c, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Error("upgrade")
		return
	}
	defer c.Close()

	log := g.log.WithField("id", gs.ID)
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("read")
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}
		text := strings.TrimSpace(string(message))
		log.Debug("\t> ", text)

		var cmdErr error
		dto := snapshot(gs, func(s *session.Session) {
			for _, cmd := range iterBySep(text, "\n") {
				if cmdErr = executeCommand(s, strings.TrimSpace(cmd)); cmdErr != nil {
					return
				}
			}
		})
		if cmdErr != nil {
			log.WithError(cmdErr).Warn("command")
			if err := c.WriteJSON(wrapError(cmdErr)); err != nil {
				log.WithError(err).Error("write")
				return
			}
			continue
		}

		if err := c.WriteJSON(dto); err != nil {
			log.WithError(err).Error("write")
			return
		}
		log.Debug("\t< <session data>")
	}
}
