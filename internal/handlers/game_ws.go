// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/uno-arena/server/internal/game"
	"github.com/uno-arena/server/internal/middleware"
	"github.com/uno-arena/server/internal/models"
)

// session identifies which seat in which room a connection is bound to.
// It is set by create_room / join_room and lives for the connection.
type session struct {
	roomID   string
	playerID uuid.UUID
}

func (sess *session) active() bool {
	return sess.roomID != ""
}

// GameWSHandler upgrades the HTTP connection to a websocket and runs the
// message loop for one client. All room actions arrive on this single
// endpoint; the session binds the connection to a room after create/join.
func GameWSHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"game"},
			OriginPatterns: []string{"*"}, // adjust for production security
		})
		if err != nil {
			s.Logger.Warnf("WebSocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "Internal server error during handler exit.")

		if c.Subprotocol() != "game" {
			c.Close(BadSubprotocolError, "Client must use the 'game' subprotocol.")
			return
		}
		middleware.LogWebSocketConnect(s.Logger, r.RemoteAddr, r.URL.Path)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		sess := &session{}
		readMessages(ctx, c, s, sess)

		// Read loop exited: the connection is gone. If the client had a seat,
		// mark it disconnected and let the room carry on.
		middleware.LogWebSocketDisconnect(s.Logger, r.RemoteAddr, r.URL.Path, nil)
		if sess.active() {
			handleConnectionLost(s, sess)
		}
	}
}

// handleConnectionLost marks the seat disconnected and tells the room.
func handleConnectionLost(s *Server, sess *session) {
	g, ok := s.Store.Get(sess.roomID)
	if !ok {
		return
	}
	g.Mu.Lock()
	g.HandleDisconnect(sess.playerID)
	broadcastEvent(s, g, map[string]interface{}{
		"type":     "player_disconnected",
		"playerId": sess.playerID,
	})
	if g.Status == game.StatusPlaying {
		// The turn may have auto-advanced past the leaver.
		broadcastState(s, g)
	}
	g.Mu.Unlock()
	s.journalAction(sess.roomID, sess.playerID, "player_disconnected", nil)
}

// readMessages reads, validates and routes client messages until the
// connection dies or the context is cancelled.
func readMessages(ctx context.Context, c *websocket.Conn, s *Server, sess *session) {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				s.Logger.Debug("websocket closed normally")
			} else if !strings.Contains(err.Error(), "context canceled") {
				s.Logger.Warnf("websocket read error: %v (status: %d)", err, status)
			}
			return
		}
		if msgType != websocket.MessageText {
			continue
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			sendWsError(c, "Invalid JSON format.", msg.Type)
			continue
		}

		s.Logger.WithFields(logrus.Fields{
			"action": msg.Type,
			"room":   sess.roomID,
		}).Debug("received action")

		switch msg.Type {
		case "create_room":
			handleCreateRoom(c, s, sess, msg)
		case "join_room":
			handleJoinRoom(c, s, sess, msg)
		case "start_game", "play_card", "draw_card", "call_uno", "challenge_uno":
			if !sess.active() {
				sendWsError(c, "You are not in a game room.", msg.Type)
				continue
			}
			g, ok := s.Store.Get(sess.roomID)
			if !ok {
				sendWsError(c, "Game not found.", msg.Type)
				continue
			}
			handleGameAction(c, s, sess, g, msg)
		case "ping":
			sendWsMessage(c, map[string]string{"type": "pong"})
		default:
			sendWsError(c, fmt.Sprintf("Unknown action type: %s", msg.Type), msg.Type)
		}
	}
}

func handleCreateRoom(c *websocket.Conn, s *Server, sess *session, msg Message) {
	if sess.active() {
		sendWsError(c, "Already in a room.", msg.Type)
		return
	}
	name := msg.PlayerName
	if name == "" {
		name = "Host"
	}
	if err := validateName(name); err != nil {
		sendWsError(c, err.Error(), msg.Type)
		return
	}

	roomID := newRoomCode()
	host := &models.Player{
		ID:        uuid.New(),
		Name:      name,
		Hand:      []*models.Card{},
		Connected: true,
		Conn:      c,
	}
	g := game.New(roomID, []*models.Player{host}, nil)
	g.SetLogger(logrus.NewEntry(s.Logger))
	s.Store.Save(g)

	sess.roomID = roomID
	sess.playerID = host.ID
	s.Logger.WithFields(logrus.Fields{"room": roomID, "player": host.ID}).Info("room created")

	sendWsMessage(c, map[string]interface{}{
		"type":     "room_created",
		"roomId":   roomID,
		"playerId": host.ID,
	})
	g.Mu.Lock()
	sendWsMessage(c, syncPayload(g.ViewFor(host.ID)))
	g.Mu.Unlock()
	s.journalAction(roomID, host.ID, "room_created", nil)
}

func handleJoinRoom(c *websocket.Conn, s *Server, sess *session, msg Message) {
	if sess.active() {
		sendWsError(c, "Already in a room.", msg.Type)
		return
	}
	roomID, playerID, err := parseJoin(msg)
	if err != nil {
		sendWsError(c, err.Error(), msg.Type)
		return
	}
	roomID = strings.ToUpper(roomID)
	g, ok := s.Store.Get(roomID)
	if !ok {
		sendWsError(c, "Room not found.", msg.Type)
		return
	}

	g.Mu.Lock()
	defer g.Mu.Unlock()

	if playerID != uuid.Nil && g.PlayerByID(playerID) != nil {
		// Known seat: this is a reconnection.
		if err := g.HandleReconnect(playerID, c); err != nil {
			sendWsError(c, err.Error(), msg.Type)
			return
		}
		sess.roomID = roomID
		sess.playerID = playerID
		sendWsMessage(c, syncPayload(g.ViewFor(playerID)))
		broadcastEvent(s, g, map[string]interface{}{
			"type":    "notification",
			"message": fmt.Sprintf("%s reconnected", g.PlayerByID(playerID).Name),
		})
		broadcastState(s, g)
		s.journalAction(roomID, playerID, "player_reconnected", nil)
		return
	}

	joiner := &models.Player{
		ID:        uuid.New(),
		Name:      msg.PlayerName,
		Hand:      []*models.Card{},
		Connected: true,
		Conn:      c,
	}
	if err := g.AddPlayer(joiner); err != nil {
		sendWsError(c, joinErrMessage(err), msg.Type)
		return
	}
	sess.roomID = roomID
	sess.playerID = joiner.ID

	sendWsMessage(c, map[string]interface{}{
		"type":     "joined_success",
		"playerId": joiner.ID,
	})
	broadcastState(s, g)
	s.journalAction(roomID, joiner.ID, "player_joined", map[string]interface{}{"name": joiner.Name})
}

func joinErrMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrAlreadyStarted):
		return "Game already in progress."
	case errors.Is(err, game.ErrRoomFull):
		return "Room is full."
	}
	return err.Error()
}

// handleGameAction routes the in-game actions. The game mutex is held for
// the full load-mutate-broadcast cycle, which is what serializes concurrent
// actions against one room.
func handleGameAction(c *websocket.Conn, s *Server, sess *session, g *game.Game, msg Message) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	switch msg.Type {
	case "start_game":
		if len(g.Players) == 0 || g.Players[0].ID != sess.playerID {
			sendWsError(c, "Only the host can start.", msg.Type)
			return
		}
		if err := g.Start(); err != nil {
			sendWsError(c, err.Error(), msg.Type)
			return
		}
		broadcastState(s, g)
		s.journalAction(sess.roomID, sess.playerID, "game_started", nil)

	case "play_card":
		cardID, color, err := parsePlay(msg)
		if err != nil {
			sendWsError(c, err.Error(), msg.Type)
			return
		}
		if err := g.PlayCard(sess.playerID, cardID, color); err != nil {
			// Nothing changed, so only the actor hears about it.
			sendWsError(c, err.Error(), msg.Type)
			return
		}
		broadcastState(s, g)
		if g.Status == game.StatusFinished {
			broadcastEvent(s, g, map[string]interface{}{
				"type":     "game_over",
				"winnerId": g.WinnerID,
			})
		}
		s.journalAction(sess.roomID, sess.playerID, "card_played", map[string]interface{}{
			"cardId": cardID.String(),
		})

	case "draw_card":
		if !s.allowDraw(sess.playerID) {
			s.Logger.WithField("player", sess.playerID).Debug("ignoring rapid draw")
			return
		}
		g.DrawCards(sess.playerID, 1)
		broadcastState(s, g)
		s.journalAction(sess.roomID, sess.playerID, "card_drawn", nil)

	case "call_uno":
		if err := g.CallUno(sess.playerID); err != nil {
			sendWsError(c, err.Error(), msg.Type)
			return
		}
		broadcastEvent(s, g, map[string]interface{}{
			"type":     "uno_called",
			"playerId": sess.playerID,
		})
		broadcastState(s, g)
		s.journalAction(sess.roomID, sess.playerID, "uno_called", nil)

	case "challenge_uno":
		target, err := parseTarget(msg)
		if err != nil {
			sendWsError(c, err.Error(), msg.Type)
			return
		}
		success, err := g.ChallengeUno(sess.playerID, target)
		if err != nil {
			sendWsError(c, err.Error(), msg.Type)
			return
		}
		broadcastEvent(s, g, map[string]interface{}{
			"type":       "challenge_result",
			"challenger": sess.playerID,
			"victim":     target,
			"success":    success,
		})
		broadcastState(s, g)
		s.journalAction(sess.roomID, sess.playerID, "uno_challenged", map[string]interface{}{
			"victim":  target.String(),
			"success": success,
		})
	}
}

func syncPayload(v game.View) map[string]interface{} {
	return map[string]interface{}{
		"type":  "sync_state",
		"state": v,
	}
}

// broadcastState sends every connected player their own sanitized view.
// The caller holds g.Mu; writes happen asynchronously so slow clients never
// block game logic.
func broadcastState(s *Server, g *game.Game) {
	for _, p := range g.Players {
		if !p.Connected || p.Conn == nil {
			continue
		}
		data, err := json.Marshal(syncPayload(g.ViewFor(p.ID)))
		if err != nil {
			s.Logger.Errorf("failed to marshal view for player %s: %v", p.ID, err)
			continue
		}
		writeAsync(s, p.Conn, data)
	}
}

// broadcastEvent sends the same payload to every connected player.
func broadcastEvent(s *Server, g *game.Game, payload map[string]interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.Logger.Errorf("failed to marshal event %v: %v", payload["type"], err)
		return
	}
	for _, p := range g.Players {
		if p.Connected && p.Conn != nil {
			writeAsync(s, p.Conn, data)
		}
	}
}

func writeAsync(s *Server, conn *websocket.Conn, data []byte) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
			s.Logger.Warnf("failed to write websocket message: %v", err)
		}
	}()
}

// sendWsMessage marshals a message and sends it to one client with a write
// timeout. Delivery failures are left to the read loop to detect.
func sendWsMessage(c *websocket.Conn, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = c.Write(ctx, websocket.MessageText, data)
}

// sendWsError sends a structured error message to the acting client only.
func sendWsError(c *websocket.Conn, errorMsg, event string) {
	sendWsMessage(c, map[string]interface{}{
		"type":    "error",
		"message": errorMsg,
		"event":   event,
	})
}
