// Package session drives one game: it owns a grid, the pixel layout used
// to address it and the surface the game is drawn on.
package session

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

type Button uint8

const (
	Primary Button = iota + 1
	Secondary
)

func (b Button) String() string {
	switch b {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return "unknown"
	}
}

type Status uint8

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for v := Playing; v <= Lost; v++ {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

func (s Status) Over() bool {
	return s != Playing
}

// Surface receives the visual descriptor of every cell on each draw.
type Surface interface {
	DrawCell(v mines.Visual)
}

type Config struct {
	mines.Params
	Layout mines.Layout
}

type Session struct {
	grid    *mines.Grid
	layout  mines.Layout
	surface Surface
	status  Status
	log     *logrus.Entry
}

// New generates a fresh grid. surface may be nil when nothing is drawn
// locally.
func New(cfg Config, r *rand.Rand, surface Surface, log *logrus.Logger) (*Session, error) {
	grid, err := mines.NewGrid(cfg.Size, cfg.MineCount, r)
	if err != nil {
		return nil, err
	}
	return FromGrid(grid, cfg.Layout, surface, log)
}

func FromGrid(grid *mines.Grid, layout mines.Layout, surface Surface, log *logrus.Logger) (*Session, error) {
	layout, err := mines.NewLayout(layout.CellSize, layout.Gap)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Session{
		grid:    grid,
		layout:  layout,
		surface: surface,
		log: log.WithFields(logrus.Fields{
			"size":  grid.Size(),
			"mines": grid.MineCount(),
		}),
	}
	s.log.Info("new game")
	return s, nil
}

func (s *Session) Grid() *mines.Grid {
	return s.grid
}

func (s *Session) Layout() mines.Layout {
	return s.layout
}

func (s *Session) Status() Status {
	return s.status
}

func (s *Session) ScreenSize() int {
	return s.layout.ScreenSize(s.grid.Size())
}

func (s *Session) cellAt(p mines.Point) (mines.Coord, bool) {
	return s.layout.CellAt(s.grid.Size(), p)
}

// Click applies one input event and settles the outcome: a revealed mine
// loses the game, revealing the last safe cell wins it. Input after the
// game is over is ignored.
func (s *Session) Click(p mines.Point, b Button) Status {
	if s.status.Over() {
		return s.status
	}

	switch b {
	case Primary:
		s.RevealAt(p)
		if c, ok := s.cellAt(p); ok && s.grid.IsMine(c) && s.grid.State(c) == mines.Revealed {
			s.ExplodeMineAt(p)
			s.status = Lost
			s.log.WithField("cell", c.String()).Info("mine exploded")
			return s.status
		}
	case Secondary:
		s.ToggleFlagAt(p)
	default:
		return s.status
	}

	if s.grid.HasWon() {
		s.grid.RevealAll()
		s.status = Won
		s.log.Info("game won")
	}
	return s.status
}

func (s *Session) RevealAt(p mines.Point) []mines.Coord {
	c, ok := s.cellAt(p)
	if !ok {
		return nil
	}
	return s.grid.Reveal(c)
}

func (s *Session) ToggleFlagAt(p mines.Point) {
	if c, ok := s.cellAt(p); ok {
		s.grid.ToggleFlag(c)
	}
}

func (s *Session) IsMineAt(p mines.Point) bool {
	c, ok := s.cellAt(p)
	return ok && s.grid.IsMine(c)
}

func (s *Session) ExplodeMineAt(p mines.Point) {
	if c, ok := s.cellAt(p); ok {
		s.grid.ExplodeMine(c)
	}
}

// Forfeit ends a running game as lost and shows the whole board.
func (s *Session) Forfeit() {
	if s.status.Over() {
		return
	}
	s.grid.RevealAll()
	s.status = Lost
	s.log.Info("game forfeited")
}

func (s *Session) Visuals() []mines.Visual {
	return s.grid.Visuals(s.layout)
}

func (s *Session) Draw() {
	if s.surface == nil {
		return
	}
	for _, v := range s.Visuals() {
		s.surface.DrawCell(v)
	}
}
