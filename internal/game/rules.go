// internal/game/rules.go
package game

import "github.com/uno-arena/server/internal/models"

// CanPlayCard reports whether card is legal against the game's active facets.
// The facets are independent: matching any one of color, number or symbol is
// enough, and wilds always match.
func CanPlayCard(card *models.Card, g *Game) bool {
	if card.Color == models.ColorWild {
		return true
	}
	if card.Color == g.ActiveColor {
		return true
	}
	if card.IsNumber() && g.ActiveNumber != nil && card.Value != nil && *card.Value == *g.ActiveNumber {
		return true
	}
	if !card.IsNumber() && g.ActiveType != "" && card.Type == g.ActiveType {
		return true
	}
	return false
}

// IsWildDrawFourIllegal reports whether a wild draw four was a bluff: the
// hand holds a card matching the color that was active when it was played.
//
// No operation invokes this yet; the draw four penalty is applied
// unconditionally at play time. Kept for a future challenge action.
func IsWildDrawFourIllegal(hand []*models.Card, activeColor models.CardColor) bool {
	for _, c := range hand {
		if c.Color == activeColor {
			return true
		}
	}
	return false
}

// NextPlayerIndex steps from current around the table. direction is +1 or -1;
// the result is always in [0, playerCount).
func NextPlayerIndex(current, direction, playerCount, steps int) int {
	next := (current + direction*steps) % playerCount
	if next < 0 {
		next += playerCount
	}
	return next
}
