// internal/handlers/schemas_test.go
package handlers

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uno-arena/server/internal/models"
)

func TestValidateName(t *testing.T) {
	assert.NoError(t, validateName("a"))
	assert.NoError(t, validateName(strings.Repeat("x", 20)))
	assert.Error(t, validateName(""))
	assert.Error(t, validateName(strings.Repeat("x", 21)))
}

func TestParseJoin(t *testing.T) {
	t.Run("fresh join", func(t *testing.T) {
		roomID, playerID, err := parseJoin(Message{RoomID: "ABC123", PlayerName: "alice"})
		require.NoError(t, err)
		assert.Equal(t, "ABC123", roomID)
		assert.Equal(t, uuid.Nil, playerID)
	})

	t.Run("resume with player id", func(t *testing.T) {
		id := uuid.New()
		_, playerID, err := parseJoin(Message{RoomID: "ABC123", PlayerName: "alice", PlayerID: id.String()})
		require.NoError(t, err)
		assert.Equal(t, id, playerID)
	})

	t.Run("missing room", func(t *testing.T) {
		_, _, err := parseJoin(Message{PlayerName: "alice"})
		assert.Error(t, err)
	})

	t.Run("bad name", func(t *testing.T) {
		_, _, err := parseJoin(Message{RoomID: "ABC123"})
		assert.Error(t, err)
	})

	t.Run("malformed player id", func(t *testing.T) {
		_, _, err := parseJoin(Message{RoomID: "ABC123", PlayerName: "alice", PlayerID: "not-a-uuid"})
		assert.Error(t, err)
	})
}

func TestParsePlay(t *testing.T) {
	id := uuid.New()

	t.Run("no color", func(t *testing.T) {
		cardID, color, err := parsePlay(Message{CardID: id.String()})
		require.NoError(t, err)
		assert.Equal(t, id, cardID)
		assert.Empty(t, color)
	})

	t.Run("concrete color", func(t *testing.T) {
		_, color, err := parsePlay(Message{CardID: id.String(), SelectedColor: "blue"})
		require.NoError(t, err)
		assert.Equal(t, models.ColorBlue, color)
	})

	t.Run("wild is not a selectable color", func(t *testing.T) {
		_, _, err := parsePlay(Message{CardID: id.String(), SelectedColor: "wild"})
		assert.Error(t, err)
	})

	t.Run("unknown color", func(t *testing.T) {
		_, _, err := parsePlay(Message{CardID: id.String(), SelectedColor: "purple"})
		assert.Error(t, err)
	})

	t.Run("malformed card id", func(t *testing.T) {
		_, _, err := parsePlay(Message{CardID: "nope"})
		assert.Error(t, err)
	})
}

func TestParseTarget(t *testing.T) {
	id := uuid.New()

	target, err := parseTarget(Message{TargetPlayerID: id.String()})
	require.NoError(t, err)
	assert.Equal(t, id, target)

	_, err = parseTarget(Message{})
	assert.Error(t, err)
}

func TestNewRoomCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := newRoomCode()
		assert.Len(t, code, 6)
		assert.Equal(t, strings.ToUpper(code), code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}
