// internal/handlers/schemas.go
package handlers

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uno-arena/server/internal/models"
)

// Message is the envelope for every inbound websocket message. Fields beyond
// Type are populated depending on the action.
type Message struct {
	Type string `json:"type"`

	// create_room / join_room
	PlayerName string `json:"playerName,omitempty"`
	RoomID     string `json:"roomId,omitempty"`
	PlayerID   string `json:"playerId,omitempty"` // present on reconnect attempts

	// play_card
	CardID        string `json:"cardId,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"` // required for wilds

	// challenge_uno
	TargetPlayerID string `json:"targetPlayerId,omitempty"`
}

var errBadName = errors.New("playerName must be 1-20 characters")

// validateName checks the display-name constraint shared by create and join.
func validateName(name string) error {
	if len(name) < 1 || len(name) > 20 {
		return errBadName
	}
	return nil
}

// parseJoin validates a join_room message. playerID is uuid.Nil for fresh
// joins and set when the client asks to resume an existing seat.
func parseJoin(msg Message) (roomID string, playerID uuid.UUID, err error) {
	if msg.RoomID == "" {
		return "", uuid.Nil, errors.New("roomId is required")
	}
	if err := validateName(msg.PlayerName); err != nil {
		return "", uuid.Nil, err
	}
	if msg.PlayerID != "" {
		playerID, err = uuid.Parse(msg.PlayerID)
		if err != nil {
			return "", uuid.Nil, fmt.Errorf("invalid playerId: %w", err)
		}
	}
	return msg.RoomID, playerID, nil
}

// parsePlay validates a play_card message. The color may be empty for
// non-wild cards; when present it must name a concrete color.
func parsePlay(msg Message) (cardID uuid.UUID, color models.CardColor, err error) {
	cardID, err = uuid.Parse(msg.CardID)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid cardId: %w", err)
	}
	if msg.SelectedColor == "" {
		return cardID, "", nil
	}
	color = models.CardColor(msg.SelectedColor)
	if !color.IsConcrete() {
		return uuid.Nil, "", fmt.Errorf("selectedColor must be one of red, blue, green, yellow")
	}
	return cardID, color, nil
}

// parseTarget validates a challenge_uno message.
func parseTarget(msg Message) (uuid.UUID, error) {
	target, err := uuid.Parse(msg.TargetPlayerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid targetPlayerId: %w", err)
	}
	return target, nil
}
