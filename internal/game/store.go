package game

import "sync"

// Store is the per-room registry: a plain keyed map with no transactional
// semantics. Serializing actions against one room is the caller's job, done
// by holding the Game's own mutex for the full load-mutate cycle.
type Store struct {
	mu    sync.Mutex
	games map[string]*Game
}

func NewStore() *Store {
	return &Store{
		games: make(map[string]*Game),
	}
}

// Get returns the game for roomID, if any.
func (s *Store) Get(roomID string) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[roomID]
	return g, ok
}

// Save registers the game under its room ID.
func (s *Store) Save(g *Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.RoomID] = g
}

// Delete removes the room. The game value itself is simply dropped.
func (s *Store) Delete(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, roomID)
}
