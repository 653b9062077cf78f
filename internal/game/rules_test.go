// internal/game/rules_test.go
package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/uno-arena/server/internal/models"
)

func intp(v int) *int { return &v }

func numberCard(color models.CardColor, value int) *models.Card {
	return &models.Card{ID: uuid.New(), Color: color, Type: models.TypeNumber, Value: intp(value)}
}

func actionCard(color models.CardColor, t models.CardType) *models.Card {
	return &models.Card{ID: uuid.New(), Color: color, Type: t}
}

func TestCanPlayCard(t *testing.T) {
	g := &Game{
		ActiveColor:  models.ColorBlue,
		ActiveNumber: intp(5),
		ActiveType:   models.TypeNumber,
	}

	tests := []struct {
		name string
		card *models.Card
		want bool
	}{
		{"wild always plays", actionCard(models.ColorWild, models.TypeWild), true},
		{"wild draw four always plays", actionCard(models.ColorWild, models.TypeWildDrawFour), true},
		{"color match", numberCard(models.ColorBlue, 9), true},
		{"number match across colors", numberCard(models.ColorRed, 5), true},
		{"no facet matches", numberCard(models.ColorRed, 9), false},
		{"action card wrong color wrong symbol", actionCard(models.ColorRed, models.TypeSkip), false},
		{"action card color match", actionCard(models.ColorBlue, models.TypeSkip), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPlayCard(tt.card, g))
		})
	}
}

func TestCanPlayCardSymbolMatch(t *testing.T) {
	// top of discard is a red skip: a blue skip is legal by symbol
	g := &Game{
		ActiveColor: models.ColorRed,
		ActiveType:  models.TypeSkip,
	}
	assert.True(t, CanPlayCard(actionCard(models.ColorBlue, models.TypeSkip), g))
	assert.False(t, CanPlayCard(numberCard(models.ColorBlue, 4), g))
}

func TestIsWildDrawFourIllegal(t *testing.T) {
	hand := []*models.Card{
		numberCard(models.ColorGreen, 2),
		actionCard(models.ColorYellow, models.TypeSkip),
	}
	assert.True(t, IsWildDrawFourIllegal(hand, models.ColorGreen), "holding the active color is a bluff")
	assert.True(t, IsWildDrawFourIllegal(hand, models.ColorYellow))
	assert.False(t, IsWildDrawFourIllegal(hand, models.ColorRed))
	assert.False(t, IsWildDrawFourIllegal(nil, models.ColorRed))
}

func TestNextPlayerIndexRange(t *testing.T) {
	for _, playerCount := range []int{1, 2, 3, 4, 7, 10} {
		for _, direction := range []int{1, -1} {
			for current := 0; current < playerCount; current++ {
				for steps := 0; steps <= 2*playerCount+1; steps++ {
					got := NextPlayerIndex(current, direction, playerCount, steps)
					assert.GreaterOrEqual(t, got, 0)
					assert.Less(t, got, playerCount)
				}
			}
		}
	}
}

func TestNextPlayerIndexValues(t *testing.T) {
	assert.Equal(t, 1, NextPlayerIndex(0, 1, 3, 1))
	assert.Equal(t, 2, NextPlayerIndex(0, 1, 3, 2))
	assert.Equal(t, 0, NextPlayerIndex(0, 1, 3, 3))
	assert.Equal(t, 2, NextPlayerIndex(0, -1, 3, 1), "stepping backwards wraps to the last seat")
	assert.Equal(t, 1, NextPlayerIndex(0, -1, 3, 2))
	assert.Equal(t, 0, NextPlayerIndex(1, -1, 2, 1))
	assert.Equal(t, 0, NextPlayerIndex(2, 1, 3, 1))
}
