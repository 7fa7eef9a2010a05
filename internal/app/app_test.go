package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
)

func testApp(addr string, ttl time.Duration) *App {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(log, &config.Config{
		Mode:       "development",
		Addr:       addr,
		SessionTTL: ttl,
		Game:       config.Game{Size: 5, MineCount: 3, CellSize: 20, Gap: 2, MaxSize: 16},
	})
}

func TestRoutes(t *testing.T) {
	srv := httptest.NewServer(testApp("", time.Hour).Handler())
	defer srv.Close()

	res, err := http.Post(srv.URL+"/game", "", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		ID     string `json:"game_session_id"`
		Size   int    `json:"size"`
		Layout struct {
			CellSize int `json:"cell_size"`
			Gap      int `json:"gap"`
		} `json:"layout"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, 5, body.Size)
	assert.Equal(t, 20, body.Layout.CellSize)
	assert.Equal(t, 2, body.Layout.Gap)

	res, err = http.Get(srv.URL + "/game/" + body.ID)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err = http.Get(srv.URL + "/game")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestStartStopsOnCancel(t *testing.T) {
	a := testApp("127.0.0.1:0", time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestStartPrunesIdleSessions(t *testing.T) {
	a := testApp("127.0.0.1:0", 20*time.Millisecond)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/game", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, a.sessions.Len())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()

	assert.Eventually(t, func() bool {
		return a.sessions.Len() == 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
