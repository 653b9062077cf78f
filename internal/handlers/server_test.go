// internal/handlers/server_test.go
package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestAllowDrawDebounce(t *testing.T) {
	s := NewServer(logrus.New(), nil)
	player := uuid.New()

	assert.True(t, s.allowDraw(player), "first draw passes")
	assert.False(t, s.allowDraw(player), "immediate repeat is dropped")

	other := uuid.New()
	assert.True(t, s.allowDraw(other), "debounce is per player")

	// simulate the window elapsing
	s.mu.Lock()
	s.lastAction[player] = time.Now().Add(-drawDebounce - time.Millisecond)
	s.mu.Unlock()
	assert.True(t, s.allowDraw(player))
}

func TestJournalActionNilJournalIsNoop(t *testing.T) {
	s := NewServer(logrus.New(), nil)
	s.journalAction("ABC123", uuid.New(), "play_card", nil)
}
