// internal/deck/deck.go
package deck

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/uno-arena/server/internal/models"
)

// Size is the total card count of a full deck: 25 cards in each of the four
// colors, plus 4 wilds, 4 wild draw fours and a single wild shuffle hands.
const Size = 109

// New builds a full deck in canonical order. Every card gets a fresh UUID;
// composition is deterministic, only Shuffle introduces randomness.
func New() []*models.Card {
	cards := make([]*models.Card, 0, Size)

	number := func(color models.CardColor, value int) *models.Card {
		v := value
		return &models.Card{ID: uuid.New(), Color: color, Type: models.TypeNumber, Value: &v}
	}
	action := func(color models.CardColor, t models.CardType) *models.Card {
		return &models.Card{ID: uuid.New(), Color: color, Type: t}
	}

	for _, color := range models.Colors {
		// one zero per color
		cards = append(cards, number(color, 0))

		// two of each 1-9
		for v := 1; v <= 9; v++ {
			cards = append(cards, number(color, v), number(color, v))
		}

		// two of each action card
		for _, t := range []models.CardType{models.TypeSkip, models.TypeReverse, models.TypeDrawTwo} {
			cards = append(cards, action(color, t), action(color, t))
		}
	}

	for i := 0; i < 4; i++ {
		cards = append(cards, action(models.ColorWild, models.TypeWild))
		cards = append(cards, action(models.ColorWild, models.TypeWildDrawFour))
	}
	cards = append(cards, action(models.ColorWild, models.TypeWildShuffleHands))

	return cards
}

// Shuffle returns a new uniformly random permutation of cards using the given
// source. The input slice is left untouched so callers can keep snapshots.
// Passing a seeded *rand.Rand makes the ordering reproducible.
func Shuffle(cards []*models.Card, r *rand.Rand) []*models.Card {
	shuffled := make([]*models.Card, len(cards))
	copy(shuffled, cards)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
