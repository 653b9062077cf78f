// internal/game/errors.go
package game

import "errors"

// Every operation either fully applies or returns one of these and leaves the
// game untouched. Callers branch with errors.Is rather than matching text.
var (
	// Precondition errors.
	ErrTooFewPlayers  = errors.New("not enough players to start")
	ErrAlreadyStarted = errors.New("game already started")
	ErrNotStarted     = errors.New("game not in progress")
	ErrRoomFull       = errors.New("room is full")

	// Turn and possession errors.
	ErrNotYourTurn   = errors.New("not your turn")
	ErrCardNotInHand = errors.New("card not in hand")

	// Legality errors.
	ErrIllegalPlay   = errors.New("card does not match active color, number or symbol")
	ErrColorRequired = errors.New("a concrete color must be chosen for wild cards")

	// Lookup errors.
	ErrPlayerNotFound = errors.New("player not found in game")
)
