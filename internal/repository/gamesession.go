package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/session"
)

var ErrNotFound = errors.New("game session not found")

// GameSession serializes access to one running game: every move is
// applied under the session lock, one at a time.
type GameSession struct {
	ID        string
	StartedAt time.Time

	mu        sync.Mutex
	endedAt   time.Time
	touchedAt time.Time
	game      *session.Session
}

// Do runs fn with exclusive access to the game and stamps the end time
// the first time the game is over afterwards.
func (g *GameSession) Do(fn func(s *session.Session)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.game)
	g.EndedAt()
	g.touchedAt = time.Now()
}

func (g *GameSession) idleSince(t time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.touchedAt.Before(t)
}

// EndedAt is zero while the game is running. Call it from within Do.
func (g *GameSession) EndedAt() time.Time {
	if g.endedAt.IsZero() && g.game.Status().Over() {
		g.endedAt = time.Now().UTC()
	}
	return g.endedAt
}

// Sessions keeps running games in memory, keyed by a random id.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*GameSession
}

func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*GameSession)}
}

func (r *Sessions) Create(game *session.Session) *GameSession {
	now := time.Now()
	gs := &GameSession{
		ID:        uuid.NewString(),
		StartedAt: now.UTC(),
		touchedAt: now,
		game:      game,
	}
	r.mu.Lock()
	r.sessions[gs.ID] = gs
	r.mu.Unlock()
	return gs
}

func (r *Sessions) Get(id string) (*GameSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gs, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return gs, nil
}

func (r *Sessions) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Prune deletes every session not touched since t and returns their ids.
func (r *Sessions) Prune(t time.Time) []string {
	var stale []string
	r.mu.RLock()
	for id, gs := range r.sessions {
		if gs.idleSince(t) {
			stale = append(stale, id)
		}
	}
	r.mu.RUnlock()

	for _, id := range stale {
		r.Delete(id)
	}
	return stale
}
