// internal/game/view.go
package game

import (
	"github.com/google/uuid"
	"github.com/uno-arena/server/internal/models"
)

// CardView is a fully revealed card inside a view.
type CardView struct {
	ID    uuid.UUID        `json:"id"`
	Color models.CardColor `json:"color"`
	Type  models.CardType  `json:"type"`
	Value *int             `json:"value,omitempty"`
}

// PlayerView is one seat as seen by a particular viewer. Hand is populated
// only for the viewer's own seat; everyone always gets the count.
type PlayerView struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Hand          []CardView `json:"hand"`
	CardCount     int        `json:"cardCount"`
	Safe          bool       `json:"safe"`
	Connected     bool       `json:"connected"`
	IsCurrentTurn bool       `json:"isCurrentTurn"`
}

// View is the sanitized snapshot sent to one viewer: their own hand in full,
// opponents' hands as counts, and never the draw pile contents.
type View struct {
	RoomID           string           `json:"roomId"`
	Status           Status           `json:"status"`
	Players          []PlayerView     `json:"players"`
	DeckSize         int              `json:"deckSize"`
	DiscardSize      int              `json:"discardSize"`
	DiscardTop       *CardView        `json:"discardTop,omitempty"`
	CurrentTurnIndex int              `json:"currentTurnIndex"`
	Direction        int              `json:"direction"`
	ActiveColor      models.CardColor `json:"activeColor"`
	ActiveNumber     *int             `json:"activeNumber,omitempty"`
	ActiveType       models.CardType  `json:"activeType,omitempty"`
	WinnerID         *uuid.UUID       `json:"winnerId,omitempty"`
}

func cardView(c *models.Card) CardView {
	return CardView{ID: c.ID, Color: c.Color, Type: c.Type, Value: c.Value}
}

// ViewFor builds the snapshot for one viewer. The caller holds g.Mu.
func (g *Game) ViewFor(viewer uuid.UUID) View {
	v := View{
		RoomID:           g.RoomID,
		Status:           g.Status,
		DeckSize:         len(g.Deck),
		DiscardSize:      len(g.DiscardPile),
		CurrentTurnIndex: g.CurrentTurnIndex,
		Direction:        g.Direction,
		ActiveColor:      g.ActiveColor,
		ActiveNumber:     g.ActiveNumber,
		ActiveType:       g.ActiveType,
		WinnerID:         g.WinnerID,
	}

	if len(g.DiscardPile) > 0 {
		top := cardView(g.DiscardPile[len(g.DiscardPile)-1])
		v.DiscardTop = &top
	}

	for i, p := range g.Players {
		pv := PlayerView{
			ID:            p.ID,
			Name:          p.Name,
			Hand:          []CardView{},
			CardCount:     len(p.Hand),
			Safe:          p.Safe,
			Connected:     p.Connected,
			IsCurrentTurn: i == g.CurrentTurnIndex,
		}
		if p.ID == viewer {
			for _, c := range p.Hand {
				pv.Hand = append(pv.Hand, cardView(c))
			}
		}
		v.Players = append(v.Players, pv)
	}
	return v
}
