package server

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/theworldofobi/whot/game"
	"github.com/theworldofobi/whot/protocol"
)

// client is one player's websocket connection
type client struct {
	playerID string
	conn     *websocket.Conn
	send     chan []byte
}

func (c *client) writeLoop() {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
	c.conn.Close()
}

// hub fans game events out to every connected player, each with their
// own masked view of the state
type hub struct {
	mu    sync.Mutex
	games map[string]map[string]*client // game id -> player id -> conn
	log   zerolog.Logger
}

func newHub(log zerolog.Logger) *hub {
	return &hub{
		games: map[string]map[string]*client{},
		log:   log,
	}
}

// register attaches a player's connection to a game
func (h *hub) register(gameID, playerID string, conn *websocket.Conn) *client {
	c := &client{playerID: playerID, conn: conn, send: make(chan []byte, 16)}
	h.mu.Lock()
	if _, ok := h.games[gameID]; !ok {
		h.games[gameID] = map[string]*client{}
	}
	if old, ok := h.games[gameID][playerID]; ok {
		close(old.send)
	}
	h.games[gameID][playerID] = c
	h.mu.Unlock()

	go c.writeLoop()
	return c
}

// unregister drops a player's connection
func (h *hub) unregister(gameID, playerID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, ok := h.games[gameID][playerID]; ok && cur == c {
		delete(h.games[gameID], playerID)
		close(c.send)
	}
}

// broadcast pushes each connected player their own projection of the
// game after something happened
func (h *hub) broadcast(instance *game.Instance, cmd protocol.Cmd, message string) {
	gameID := instance.ID()

	h.mu.Lock()
	clients := make([]*client, 0, len(h.games[gameID]))
	for _, c := range h.games[gameID] {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		view := instance.View(c.playerID)
		out := protocol.OutboundMessage{
			PlayerID: c.playerID,
			Command:  cmd,
			Message:  message,
			State:    &view,
		}
		data, err := json.Marshal(out)
		if err != nil {
			h.log.Error().Err(err).Str("gameId", gameID).Msg("marshal outbound message")
			continue
		}
		select {
		case c.send <- data:
		default:
			// slow consumer, drop the frame
		}
	}
}

// attach wires the hub to a game's event stream. Events arrive outside
// the game lock, so calling back into View here is safe.
func (h *hub) attach(instance *game.Instance) {
	instance.Subscribe(game.EventAny, func(e game.Event) {
		cmd := protocol.StateUpdate
		switch e.Type {
		case game.EventRoundStarted:
			cmd = protocol.RoundStarted
		case game.EventRoundEnded:
			cmd = protocol.RoundOver
		case game.EventGameEnded:
			cmd = protocol.GameOver
		}
		h.broadcast(instance, cmd, "")
	})
}
