package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/repository"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	log      *logrus.Logger
	config   *config.Config
	router   *http.ServeMux
	sessions *repository.Sessions
}

func New(log *logrus.Logger, cfg *config.Config) *App {
	a := &App{
		log:      log,
		config:   cfg,
		router:   http.NewServeMux(),
		sessions: repository.NewSessions(),
	}
	a.loadRoutes()
	return a
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Cors(),
		middleware.Logging(a.log),
	)
}

// Start serves until ctx is cancelled, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.Infof("ready to serve @ %s", a.config.Addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		a.pruneSessions(gCtx)
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// pruneSessions drops sessions idle for longer than the configured TTL
// until ctx is cancelled.
func (a *App) pruneSessions(ctx context.Context) {
	ticker := time.NewTicker(max(a.config.SessionTTL/2, time.Millisecond))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if ids := a.sessions.Prune(now.Add(-a.config.SessionTTL)); len(ids) > 0 {
				a.log.WithField("count", len(ids)).Info("pruned idle game sessions")
			}
		}
	}
}
