package handlers

import (
	"fmt"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
	"github.com/vancomm/minesweeper/internal/session"
)

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type CreateNewGameDTO struct {
	Size      int    `schema:"size"`
	MineCount int    `schema:"mine_count"`
	Seed      uint64 `schema:"seed"`
}

// ParseCreateNewGameDTO fills dto from the query, leaving absent keys at
// the values dto already holds.
func ParseCreateNewGameDTO(src map[string][]string, dto CreateNewGameDTO) (CreateNewGameDTO, error) {
	err := newDecoder().Decode(&dto, src)
	return dto, err
}

type ClickDTO struct {
	X      int    `schema:"x,required"`
	Y      int    `schema:"y,required"`
	Button string `schema:"button"`
}

func ParseClickDTO(src map[string][]string) (ClickDTO, error) {
	var dto ClickDTO
	err := newDecoder().Decode(&dto, src)
	return dto, err
}

func (d ClickDTO) Point() (mines.Point, error) {
	return mines.NewPoint(d.X, d.Y)
}

var ErrBadButton = fmt.Errorf("button must be one of 'primary', 'secondary'")

func ParseButton(s string) (session.Button, error) {
	switch strings.ToLower(s) {
	case "", "primary":
		return session.Primary, nil
	case "secondary":
		return session.Secondary, nil
	default:
		return 0, ErrBadButton
	}
}

type GameSessionDTO struct {
	GameSessionId string         `json:"game_session_id"`
	Size          int            `json:"size"`
	MineCount     int            `json:"mine_count"`
	FlagCount     int            `json:"flag_count"`
	Layout        mines.Layout   `json:"layout"`
	ScreenSize    int            `json:"screen_size"`
	Status        session.Status `json:"status"`
	Cells         []mines.Visual `json:"cells"`
	StartedAt     int64          `json:"started_at"`
	EndedAt       *int64         `json:"ended_at,omitempty"`
}

// NewGameSessionDTO must be called from within [repository.GameSession.Do].
func NewGameSessionDTO(gs *repository.GameSession, s *session.Session) *GameSessionDTO {
	var endedAt *int64
	if e := gs.EndedAt(); !e.IsZero() {
		ms := e.UnixMilli()
		endedAt = &ms
	}
	return &GameSessionDTO{
		GameSessionId: gs.ID,
		Size:          s.Grid().Size(),
		MineCount:     s.Grid().MineCount(),
		FlagCount:     s.Grid().FlagCount(),
		Layout:        s.Layout(),
		ScreenSize:    s.ScreenSize(),
		Status:        s.Status(),
		Cells:         s.Visuals(),
		StartedAt:     gs.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
	}
}

func snapshot(gs *repository.GameSession, fn func(s *session.Session)) (dto *GameSessionDTO) {
	gs.Do(func(s *session.Session) {
		if fn != nil {
			fn(s)
		}
		dto = NewGameSessionDTO(gs, s)
	})
	return
}
