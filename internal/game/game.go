// internal/game/game.go
package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/uno-arena/server/internal/deck"
	"github.com/uno-arena/server/internal/models"
)

// Status is the lifecycle stage of a game. Transitions are monotonic:
// WAITING -> PLAYING -> FINISHED.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// MaxPlayers caps seats per room.
const MaxPlayers = 10

// HandSize is the number of cards dealt to each player at start.
const HandSize = 7

// Game holds the entire state for a single room.
//
// Operations are plain synchronous computations over this state; the engine
// does no locking and no I/O of its own. The transport serializes access by
// holding Mu for the full duration of each operation, so every operation has
// exclusive access to the state it mutates. Each operation validates fully
// before its first write: a rejected action leaves the game unchanged.
type Game struct {
	RoomID  string
	Status  Status
	Players []*models.Player

	// Deck is the draw pile and DiscardPile the discard stack; in both, the
	// last element is the top card.
	Deck        []*models.Card
	DiscardPile []*models.Card

	CurrentTurnIndex int
	Direction        int // +1 or -1

	// The matchable facets of the top discard, decoupled from the physical
	// card because a wild's color is chosen by the player. After any resolved
	// play ActiveColor is a concrete color; the one exception is a wild
	// flipped as the starting card, where ColorWild means "first player may
	// pick any color with their play".
	ActiveColor  models.CardColor
	ActiveNumber *int
	ActiveType   models.CardType

	WinnerID *uuid.UUID

	// Mu is held by the owning transport around every operation and every
	// read of the state (views, broadcasts).
	Mu sync.Mutex

	rng *rand.Rand
	log *logrus.Entry
}

// New builds a WAITING game for roomID with the given seated players. A nil
// rng falls back to a time-seeded source; tests inject a seeded one to force
// deterministic shuffles.
func New(roomID string, players []*models.Player, rng *rand.Rand) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Game{
		RoomID:           roomID,
		Status:           StatusWaiting,
		Players:          players,
		Deck:             []*models.Card{},
		DiscardPile:      []*models.Card{},
		CurrentTurnIndex: 0,
		Direction:        1,
		ActiveColor:      models.ColorRed, // placeholder until Start flips a card
		rng:              rng,
		log:              logrus.StandardLogger().WithField("room", roomID),
	}
}

// SetLogger replaces the game's log entry; used by the transport to attach
// its configured logger.
func (g *Game) SetLogger(entry *logrus.Entry) {
	g.log = entry.WithField("room", g.RoomID)
}

// AddPlayer seats a new player. Joining is only possible while WAITING.
func (g *Game) AddPlayer(p *models.Player) error {
	if g.Status != StatusWaiting {
		return ErrAlreadyStarted
	}
	if len(g.Players) >= MaxPlayers {
		return ErrRoomFull
	}
	g.Players = append(g.Players, p)
	g.log.WithFields(logrus.Fields{"player": p.ID, "name": p.Name}).Info("player joined")
	return nil
}

// Start deals a fresh shuffled deck and flips the starting card.
func (g *Game) Start() error {
	if g.Status != StatusWaiting {
		return ErrAlreadyStarted
	}
	if len(g.Players) < 2 {
		return ErrTooFewPlayers
	}

	g.Deck = deck.Shuffle(deck.New(), g.rng)
	g.Status = StatusPlaying

	for _, p := range g.Players {
		p.Hand = make([]*models.Card, 0, HandSize)
		p.Safe = false
		g.drawInto(p, HandSize)
	}

	// Flip the starting card. A wild draw four may not start the game: it
	// goes back in, the deck is reshuffled, and another card is flipped.
	top := g.popDeck()
	for top.Type == models.TypeWildDrawFour {
		g.Deck = append(g.Deck, top)
		g.Deck = deck.Shuffle(g.Deck, g.rng)
		top = g.popDeck()
	}
	g.DiscardPile = []*models.Card{top}

	g.ActiveColor = top.Color
	g.ActiveType = top.Type
	g.ActiveNumber = copyValue(top.Value)
	g.CurrentTurnIndex = 0
	g.Direction = 1

	g.applyStartingCard(top)

	// Clamp as a final safety net.
	if g.CurrentTurnIndex >= len(g.Players) {
		g.CurrentTurnIndex = 0
	}
	if g.CurrentTurnIndex < 0 {
		g.CurrentTurnIndex = len(g.Players) - 1
	}

	g.log.WithFields(logrus.Fields{
		"players": len(g.Players),
		"top":     top.Type,
	}).Info("game started")
	return nil
}

// applyStartingCard applies the house rules for the first flipped card.
// Seat 0 is "dealer's left" and would normally begin.
func (g *Game) applyStartingCard(card *models.Card) {
	switch card.Type {
	case models.TypeWild, models.TypeWildShuffleHands:
		// First player may play any color; ColorWild marks that state.
		g.ActiveColor = models.ColorWild

	case models.TypeSkip:
		// Seat 0 is skipped.
		g.CurrentTurnIndex = 1

	case models.TypeReverse:
		// Play starts with the dealer and moves the other way.
		g.Direction = -1
		g.CurrentTurnIndex = len(g.Players) - 1

	case models.TypeDrawTwo:
		// Seat 0 draws two and is skipped.
		g.DrawCards(g.Players[0].ID, 2)
		g.CurrentTurnIndex = 1
	}
}

// PlayCard executes one play for playerID: legality checks, discard, facet
// update, card effect, then the win check. The win check runs after the
// effect so a game-ending draw card still applies its penalty first.
func (g *Game) PlayCard(playerID, cardID uuid.UUID, chosenColor models.CardColor) error {
	if g.Status != StatusPlaying {
		return ErrNotStarted
	}
	playerIndex := g.PlayerIndex(playerID)
	if playerIndex == -1 {
		return ErrPlayerNotFound
	}
	if playerIndex != g.CurrentTurnIndex {
		return ErrNotYourTurn
	}
	player := g.Players[playerIndex]

	cardIndex := -1
	for i, c := range player.Hand {
		if c.ID == cardID {
			cardIndex = i
			break
		}
	}
	if cardIndex == -1 {
		return ErrCardNotInHand
	}
	card := player.Hand[cardIndex]

	if !CanPlayCard(card, g) {
		return ErrIllegalPlay
	}
	if card.Color == models.ColorWild && !chosenColor.IsConcrete() {
		return ErrColorRequired
	}

	// All checks passed; mutate.
	player.Hand = append(player.Hand[:cardIndex], player.Hand[cardIndex+1:]...)
	g.DiscardPile = append(g.DiscardPile, card)

	g.ActiveType = card.Type
	g.ActiveNumber = copyValue(card.Value)
	if card.Color == models.ColorWild {
		g.ActiveColor = chosenColor
	} else {
		g.ActiveColor = card.Color
	}

	g.applyCardEffect(card, playerIndex)

	if len(player.Hand) == 1 {
		// Down to one card: any earlier "uno" declaration must be renewed.
		player.Safe = false
	} else if len(player.Hand) == 0 {
		g.Status = StatusFinished
		winner := player.ID
		g.WinnerID = &winner
		g.log.WithField("winner", winner).Info("game finished")
	}

	g.log.WithFields(logrus.Fields{
		"player": playerID,
		"card":   card.Type,
		"color":  g.ActiveColor,
	}).Debug("card played")
	return nil
}

// applyCardEffect advances the turn and applies the card's side effects.
func (g *Game) applyCardEffect(card *models.Card, playerIndex int) {
	n := len(g.Players)

	switch card.Type {
	case models.TypeSkip:
		g.CurrentTurnIndex = NextPlayerIndex(g.CurrentTurnIndex, g.Direction, n, 2)

	case models.TypeReverse:
		if n == 2 {
			// Head to head a reverse acts as a skip.
			g.CurrentTurnIndex = NextPlayerIndex(g.CurrentTurnIndex, g.Direction, n, 2)
		} else {
			g.Direction = -g.Direction
			g.CurrentTurnIndex = NextPlayerIndex(g.CurrentTurnIndex, g.Direction, n, 1)
		}

	case models.TypeDrawTwo:
		// The next player draws two and loses their turn.
		next := NextPlayerIndex(g.CurrentTurnIndex, g.Direction, n, 1)
		g.DrawCards(g.Players[next].ID, 2)
		g.CurrentTurnIndex = NextPlayerIndex(g.CurrentTurnIndex, g.Direction, n, 2)

	case models.TypeWildDrawFour:
		// The draw is unconditional at play time; there is no challenge gate
		// wired here (see IsWildDrawFourIllegal).
		victim := NextPlayerIndex(g.CurrentTurnIndex, g.Direction, n, 1)
		g.DrawCards(g.Players[victim].ID, 4)
		g.CurrentTurnIndex = NextPlayerIndex(g.CurrentTurnIndex, g.Direction, n, 2)

	case models.TypeWildShuffleHands:
		g.shuffleHands(playerIndex)
		g.CurrentTurnIndex = NextPlayerIndex(g.CurrentTurnIndex, g.Direction, n, 1)

	default:
		// Number card or plain wild.
		g.CurrentTurnIndex = NextPlayerIndex(g.CurrentTurnIndex, g.Direction, n, 1)
	}
}

// shuffleHands pools every hand, shuffles the pool, and redeals it one card
// at a time starting with the player to the left of dealerIndex until the
// pool is exhausted.
func (g *Game) shuffleHands(dealerIndex int) {
	var pool []*models.Card
	for _, p := range g.Players {
		pool = append(pool, p.Hand...)
		p.Hand = []*models.Card{}
	}
	pool = deck.Shuffle(pool, g.rng)

	target := NextPlayerIndex(dealerIndex, g.Direction, len(g.Players), 1)
	for len(pool) > 0 {
		card := pool[len(pool)-1]
		pool = pool[:len(pool)-1]
		g.Players[target].Hand = append(g.Players[target].Hand, card)
		target = NextPlayerIndex(target, g.Direction, len(g.Players), 1)
	}
	g.log.Debug("hands pooled and redealt")
}

// DrawCards draws count cards for playerID, refilling the draw pile from the
// discard whenever it empties. Unknown players are a no-op, not an error.
func (g *Game) DrawCards(playerID uuid.UUID, count int) {
	player := g.PlayerByID(playerID)
	if player == nil {
		return
	}
	g.drawInto(player, count)

	// Holding more than one card invalidates a prior "uno" declaration.
	if len(player.Hand) > 1 {
		player.Safe = false
	}
}

// drawInto moves count cards from the draw pile to p's hand.
func (g *Game) drawInto(p *models.Player, count int) {
	for i := 0; i < count; i++ {
		if len(g.Deck) == 0 {
			g.RefillFromDiscard()
		}
		if len(g.Deck) == 0 {
			// Draw pile empty and the discard holds only the visible card;
			// the draw is silently short. See the starvation note in DESIGN.
			g.log.WithFields(logrus.Fields{
				"player": p.ID,
				"short":  count - i,
			}).Warn("draw pile exhausted, draw incomplete")
			return
		}
		p.Hand = append(p.Hand, g.popDeck())
	}
}

// popDeck removes and returns the top draw-pile card. Callers check emptiness.
func (g *Game) popDeck() *models.Card {
	card := g.Deck[len(g.Deck)-1]
	g.Deck = g.Deck[:len(g.Deck)-1]
	return card
}

// RefillFromDiscard shuffles every discard except the visible top card into a
// new draw pile. With one or zero discards there is nothing to recycle.
func (g *Game) RefillFromDiscard() {
	if len(g.DiscardPile) <= 1 {
		return
	}
	top := g.DiscardPile[len(g.DiscardPile)-1]
	rest := g.DiscardPile[:len(g.DiscardPile)-1]
	g.Deck = deck.Shuffle(rest, g.rng)
	g.DiscardPile = []*models.Card{top}
	g.log.WithField("recycled", len(g.Deck)).Info("discard pile reshuffled into draw pile")
}

// CallUno marks the player as having declared "uno". Calling is valid at any
// hand size; it only matters when the player is at one or two cards.
func (g *Game) CallUno(playerID uuid.UUID) error {
	player := g.PlayerByID(playerID)
	if player == nil {
		return ErrPlayerNotFound
	}
	player.Safe = true
	return nil
}

// ChallengeUno accuses victimID of sitting at one card without declaring.
// On a correct accusation the victim draws two and the challenge reports
// success; otherwise nothing changes.
func (g *Game) ChallengeUno(challengerID, victimID uuid.UUID) (bool, error) {
	victim := g.PlayerByID(victimID)
	if victim == nil {
		return false, ErrPlayerNotFound
	}
	if len(victim.Hand) == 1 && !victim.Safe {
		g.DrawCards(victimID, 2)
		victim.Safe = false
		g.log.WithFields(logrus.Fields{
			"challenger": challengerID,
			"victim":     victimID,
		}).Info("uno challenge succeeded")
		return true, nil
	}
	return false, nil
}

// HandleDisconnect marks the player disconnected. If it was their turn the
// turn advances to the next connected seat so the game cannot stall.
func (g *Game) HandleDisconnect(playerID uuid.UUID) {
	player := g.PlayerByID(playerID)
	if player == nil {
		return
	}
	player.Connected = false
	player.Conn = nil
	g.log.WithField("player", playerID).Info("player disconnected")

	if g.Status == StatusPlaying && g.Players[g.CurrentTurnIndex].ID == playerID {
		g.advanceToNextConnected()
	}
}

// HandleReconnect rebinds the player's transient connection and marks them
// connected again.
func (g *Game) HandleReconnect(playerID uuid.UUID, conn *websocket.Conn) error {
	player := g.PlayerByID(playerID)
	if player == nil {
		return ErrPlayerNotFound
	}
	player.Conn = conn
	player.Connected = true
	g.log.WithField("player", playerID).Info("player reconnected")
	return nil
}

// advanceToNextConnected steps forward until a connected seat is found,
// probing at most once per seat so a fully disconnected table terminates.
func (g *Game) advanceToNextConnected() {
	n := len(g.Players)
	attempts := 0
	for {
		g.CurrentTurnIndex = NextPlayerIndex(g.CurrentTurnIndex, g.Direction, n, 1)
		attempts++
		if g.Players[g.CurrentTurnIndex].Connected || attempts >= n {
			return
		}
	}
}

// PlayerByID returns the seated player with the given ID, or nil.
func (g *Game) PlayerByID(playerID uuid.UUID) *models.Player {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// PlayerIndex returns the seat index for playerID, or -1.
func (g *Game) PlayerIndex(playerID uuid.UUID) int {
	for i, p := range g.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// CountConnected returns the number of connected seats.
func (g *Game) CountConnected() int {
	n := 0
	for _, p := range g.Players {
		if p.Connected {
			n++
		}
	}
	return n
}

func copyValue(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
