// internal/handlers/server.go
package handlers

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/uno-arena/server/internal/game"
	"github.com/uno-arena/server/internal/journal"
)

// drawDebounce drops repeat draws from the same player inside this window.
// Purely a transport policy against double-fired client events.
const drawDebounce = 500 * time.Millisecond

// Server holds the room registry and the shared collaborators the websocket
// handler needs.
type Server struct {
	Store   *game.Store
	Journal *journal.Journal
	Logger  *logrus.Logger

	mu         sync.Mutex
	lastAction map[uuid.UUID]time.Time
}

func NewServer(logger *logrus.Logger, j *journal.Journal) *Server {
	return &Server{
		Store:      game.NewStore(),
		Journal:    j,
		Logger:     logger,
		lastAction: make(map[uuid.UUID]time.Time),
	}
}

// allowDraw implements the rapid-draw debounce.
func (s *Server) allowDraw(playerID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if last, ok := s.lastAction[playerID]; ok && now.Sub(last) < drawDebounce {
		return false
	}
	s.lastAction[playerID] = now
	return true
}

// newRoomCode mints a short join code: the first six characters of a UUID,
// upper-cased.
func newRoomCode() string {
	return strings.ToUpper(uuid.NewString()[:6])
}

// journalAction pushes one action record, best effort, off the hot path.
func (s *Server) journalAction(roomID string, actor uuid.UUID, action string, payload map[string]interface{}) {
	if s.Journal == nil {
		return
	}
	rec := journal.ActionRecord{RoomID: roomID, ActorID: actor, Action: action, Payload: payload}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.Journal.Record(ctx, rec); err != nil {
			s.Logger.WithError(err).Warn("failed to journal action")
		}
	}()
}
