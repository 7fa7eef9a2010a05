package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
	"github.com/vancomm/minesweeper/internal/session"
)

type testResponse struct {
	GameSessionDTO
	Error string `json:"error"`
}

var testGameConfig = config.Game{
	Size: 9, MineCount: 10, CellSize: 30, Gap: 1, MaxSize: 16,
}

func newTestServer(t *testing.T) (*httptest.Server, *repository.Sessions) {
	t.Helper()
	return newTestServerWith(t, testGameConfig)
}

func newTestServerWith(t *testing.T, cfg config.Game) (*httptest.Server, *repository.Sessions) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	sessions := repository.NewSessions()
	game := NewGameHandler(log, sessions, cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /game", game.NewGame)
	mux.HandleFunc("GET /game/{id}", game.Fetch)
	mux.HandleFunc("POST /game/{id}/click", game.Click)
	mux.HandleFunc("POST /game/{id}/forfeit", game.Forfeit)
	mux.HandleFunc("/game/{id}/connect", game.ConnectWS)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, sessions
}

func do(t *testing.T, method, url string) (int, testResponse) {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var body testResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return res.StatusCode, body
}

// seedFixedGame replaces a new session's game with a known layout.
func seedFixedGame(t *testing.T, sessions *repository.Sessions, ms ...mines.Coord) string {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	schema, err := mines.SchemaFromMines(3, ms)
	require.NoError(t, err)
	s, err := session.FromGrid(mines.NewGridFromSchema(schema), mines.DefaultLayout, nil, log)
	require.NoError(t, err)
	return sessions.Create(s).ID
}

func TestNewGameDefaults(t *testing.T) {
	srv, sessions := newTestServer(t)

	status, body := do(t, http.MethodPost, srv.URL+"/game")
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body.GameSessionId)
	assert.Equal(t, 9, body.Size)
	assert.Equal(t, 10, body.MineCount)
	assert.Equal(t, session.Playing, body.Status)
	assert.Len(t, body.Cells, 81)
	assert.Equal(t, 9*30+10, body.ScreenSize)
	assert.Nil(t, body.EndedAt)
	assert.Equal(t, 1, sessions.Len())
}

func TestNewGameParams(t *testing.T) {
	srv, _ := newTestServer(t)

	status, body := do(t, http.MethodPost, srv.URL+"/game?size=4&mine_count=3&seed=42")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 4, body.Size)
	assert.Equal(t, 3, body.MineCount)

	status, body = do(t, http.MethodPost, srv.URL+"/game?size=2&mine_count=5")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body.Error, "invalid grid configuration")

	status, _ = do(t, http.MethodPost, srv.URL+"/game?size=abc")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestNewGameRejectsOversizedGrid(t *testing.T) {
	srv, sessions := newTestServer(t)

	for _, size := range []string{"17", "50000", "4294967296"} {
		t.Run(size, func(t *testing.T) {
			status, body := do(t, http.MethodPost, srv.URL+"/game?mine_count=0&size="+size)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Contains(t, body.Error, "invalid grid configuration")
		})
	}
	assert.Zero(t, sessions.Len())

	status, body := do(t, http.MethodPost, srv.URL+"/game?mine_count=0&size=16")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body.Cells, 256)
}

func TestNewGameBadServerLayout(t *testing.T) {
	cfg := testGameConfig
	cfg.CellSize = 0
	srv, sessions := newTestServerWith(t, cfg)

	res, err := http.Post(srv.URL+"/game?size=4&mine_count=2", "", nil)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Zero(t, sessions.Len())
}

func TestFetchUnknown(t *testing.T) {
	srv, _ := newTestServer(t)
	status, body := do(t, http.MethodGet, srv.URL+"/game/nope")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, repository.ErrNotFound.Error(), body.Error)
}

func TestClickWinsGame(t *testing.T) {
	srv, sessions := newTestServer(t)
	id := seedFixedGame(t, sessions, mines.Coord{X: 2, Y: 2})

	status, body := do(t, http.MethodPost, srv.URL+"/game/"+id+"/click?x=1&y=1")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, session.Won, body.Status)
	assert.NotNil(t, body.EndedAt)

	status, body = do(t, http.MethodGet, srv.URL+"/game/"+id)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, session.Won, body.Status)
}

func TestClickFlagAndLose(t *testing.T) {
	srv, sessions := newTestServer(t)
	id := seedFixedGame(t, sessions, mines.Coord{X: 0, Y: 0})

	_, body := do(t, http.MethodPost, srv.URL+"/game/"+id+"/click?x=1&y=1&button=secondary")
	assert.Equal(t, session.Playing, body.Status)
	assert.Equal(t, 1, body.FlagCount)
	assert.Equal(t, mines.GlyphFlag, body.Cells[0].Glyph)

	_, body = do(t, http.MethodPost, srv.URL+"/game/"+id+"/click?x=1&y=1&button=secondary")
	assert.Equal(t, 0, body.FlagCount)

	_, body = do(t, http.MethodPost, srv.URL+"/game/"+id+"/click?x=1&y=1")
	assert.Equal(t, session.Lost, body.Status)
	assert.Equal(t, mines.GlyphExplodedMine, body.Cells[0].Glyph)
}

func TestClickBadParams(t *testing.T) {
	srv, sessions := newTestServer(t)
	id := seedFixedGame(t, sessions)

	tests := []struct {
		name  string
		query string
	}{
		{"missing y", "x=1"},
		{"negative x", "x=-1&y=1"},
		{"bad button", "x=1&y=1&button=middle"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			status, body := do(t, http.MethodPost, srv.URL+"/game/"+id+"/click?"+test.query)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestForfeit(t *testing.T) {
	srv, sessions := newTestServer(t)
	id := seedFixedGame(t, sessions, mines.Coord{X: 1, Y: 1})

	status, body := do(t, http.MethodPost, srv.URL+"/game/"+id+"/forfeit")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, session.Lost, body.Status)
	assert.Equal(t, mines.GlyphMine, body.Cells[4].Glyph)
}

func TestConnectWS(t *testing.T) {
	srv, sessions := newTestServer(t)
	id := seedFixedGame(t, sessions, mines.Coord{X: 2, Y: 2})

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/" + id + "/connect"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer c.Close()

	var body testResponse

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("g")))
	require.NoError(t, c.ReadJSON(&body))
	assert.Equal(t, session.Playing, body.Status)

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("f 63 63\nf 63 63")))
	body = testResponse{}
	require.NoError(t, c.ReadJSON(&body))
	assert.Equal(t, 0, body.FlagCount)

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("x 1 1")))
	body = testResponse{}
	require.NoError(t, c.ReadJSON(&body))
	assert.Equal(t, "unknown command", body.Error)

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("o 1 1")))
	body = testResponse{}
	require.NoError(t, c.ReadJSON(&body))
	assert.Equal(t, session.Won, body.Status)
}

func TestExecuteCommand(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	schema, err := mines.SchemaFromMines(2, []mines.Coord{{X: 0, Y: 0}})
	require.NoError(t, err)
	s, err := session.FromGrid(mines.NewGridFromSchema(schema), mines.DefaultLayout, nil, log)
	require.NoError(t, err)

	assert.EqualError(t, executeCommand(s, "o 1"), "invalid number of arguments")
	assert.EqualError(t, executeCommand(s, "o a 1"), "first argument must be an int")
	assert.EqualError(t, executeCommand(s, "f 1 b"), "second argument must be an int")
	assert.Error(t, executeCommand(s, "o -5 1"))

	require.NoError(t, executeCommand(s, "f 1 1"))
	assert.Equal(t, mines.Flagged, s.Grid().State(mines.Coord{}))

	require.NoError(t, executeCommand(s, "r"))
	assert.Equal(t, session.Lost, s.Status())
}

func TestIterBySep(t *testing.T) {
	var pieces []string
	for _, p := range iterBySep("a\nb\n\nc", "\n") {
		pieces = append(pieces, p)
	}
	assert.Equal(t, []string{"a", "b", "", "c"}, pieces)
}
