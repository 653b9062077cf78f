// internal/models/card.go
package models

import "github.com/google/uuid"

// CardColor is one of the four playable colors, or ColorWild for colorless cards.
type CardColor string

const (
	ColorRed    CardColor = "red"
	ColorBlue   CardColor = "blue"
	ColorGreen  CardColor = "green"
	ColorYellow CardColor = "yellow"
	ColorWild   CardColor = "wild"
)

// Colors lists the four concrete colors in deck order.
var Colors = []CardColor{ColorRed, ColorBlue, ColorGreen, ColorYellow}

// IsConcrete reports whether c is one of the four playable colors.
func (c CardColor) IsConcrete() bool {
	switch c {
	case ColorRed, ColorBlue, ColorGreen, ColorYellow:
		return true
	}
	return false
}

// CardType identifies a card's face.
type CardType string

const (
	TypeNumber           CardType = "number"
	TypeSkip             CardType = "skip"
	TypeReverse          CardType = "reverse"
	TypeDrawTwo          CardType = "draw2"
	TypeWild             CardType = "wild"
	TypeWildDrawFour     CardType = "wild_draw4"
	TypeWildShuffleHands CardType = "wild_shuffle"
)

// Card is a single physical card. Every card instance carries its own UUID so
// duplicates of the same face remain distinguishable. Cards are never mutated
// after creation.
type Card struct {
	ID    uuid.UUID `json:"id"`
	Color CardColor `json:"color"`
	Type  CardType  `json:"type"`

	// Value is 0-9 and only meaningful for TypeNumber cards.
	Value *int `json:"value,omitempty"`
}

// IsNumber reports whether the card is a number card.
func (c *Card) IsNumber() bool {
	return c.Type == TypeNumber
}
