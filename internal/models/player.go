package models

import (
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Player is one seat in a game. ID is stable across reconnects; Conn is the
// transient websocket and is rebound every time the player reconnects.
type Player struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Hand      []*Card         `json:"hand"`
	Safe      bool            `json:"safe"` // declared "uno"; immune to challenge at one card
	Connected bool            `json:"connected"`
	Conn      *websocket.Conn `json:"-"`
}
