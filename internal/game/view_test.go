// internal/game/view_test.go
package game

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uno-arena/server/internal/models"
)

func TestViewForRevealsOnlyOwnHand(t *testing.T) {
	g, players := newTestGame(t, 3)

	v := g.ViewFor(players[0].ID)

	require.Len(t, v.Players, 3)
	assert.Len(t, v.Players[0].Hand, HandSize, "own hand is revealed")
	assert.Empty(t, v.Players[1].Hand, "opponent hands are hidden")
	assert.Empty(t, v.Players[2].Hand)
	for i, pv := range v.Players {
		assert.Equal(t, len(players[i].Hand), pv.CardCount)
	}
}

func TestViewForSharedState(t *testing.T) {
	g, players := newTestGame(t, 2)

	v := g.ViewFor(players[1].ID)

	assert.Equal(t, g.RoomID, v.RoomID)
	assert.Equal(t, StatusPlaying, v.Status)
	assert.Equal(t, len(g.Deck), v.DeckSize)
	assert.Equal(t, len(g.DiscardPile), v.DiscardSize)
	require.NotNil(t, v.DiscardTop)
	assert.Equal(t, g.DiscardPile[len(g.DiscardPile)-1].ID, v.DiscardTop.ID)
	assert.Equal(t, g.ActiveColor, v.ActiveColor)
	assert.True(t, v.Players[g.CurrentTurnIndex].IsCurrentTurn)
}

func TestViewForUnknownViewerHidesAllHands(t *testing.T) {
	g, _ := newTestGame(t, 2)

	v := g.ViewFor(uuid.New())

	for _, pv := range v.Players {
		assert.Empty(t, pv.Hand)
		assert.Equal(t, HandSize, pv.CardCount)
	}
}

func TestViewJSONNeverExposesDrawPile(t *testing.T) {
	g, players := newTestGame(t, 2)

	v := g.ViewFor(players[0].ID)
	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "deck")
	assert.Contains(t, decoded, "deckSize")

	// no draw-pile card id may leak through the payload
	payload := string(raw)
	for _, c := range g.Deck {
		assert.NotContains(t, payload, c.ID.String())
	}
}

func TestViewForIncludesWinner(t *testing.T) {
	g, players := newTestGame(t, 2)
	forceTurn(g, 0, models.ColorBlue)

	last := numberCard(models.ColorBlue, 5)
	players[0].Hand = []*models.Card{last}
	require.NoError(t, g.PlayCard(players[0].ID, last.ID, ""))

	v := g.ViewFor(players[1].ID)

	assert.Equal(t, StatusFinished, v.Status)
	require.NotNil(t, v.WinnerID)
	assert.Equal(t, players[0].ID, *v.WinnerID)
}
