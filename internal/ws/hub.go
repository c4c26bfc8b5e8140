// Package ws pushes unread-count events to connected clients so the UI does
// not have to rely on polling alone. The polling endpoints stay in place as
// the fallback and initial-sync path.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks open connections per user id and fans events out to them.
type Hub struct {
	log zerolog.Logger

	mu      sync.RWMutex
	clients map[string]map[*websocket.Conn]*client
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log:     log,
		clients: make(map[string]map[*websocket.Conn]*client),
	}
}

// UnreadEvent is the only frame the server pushes.
type UnreadEvent struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
	Count  int    `json:"count"`
}

// Register takes ownership of conn and starts its pumps.
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[*websocket.Conn]*client)
	}
	c := &client{conn: conn, send: make(chan []byte, 16)}
	h.clients[userID][conn] = c

	go h.readPump(userID, conn)
	go h.writePump(c)
}

func (h *Hub) unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[userID]
	if !ok {
		return
	}
	if c, ok := clients[conn]; ok {
		close(c.send)
		delete(clients, conn)
	}
	if len(clients) == 0 {
		delete(h.clients, userID)
	}
}

// PushUnread sends the current unread count to every connection of userID.
// Slow consumers are skipped rather than blocking the caller.
func (h *Hub) PushUnread(userID string, count int) {
	data, err := json.Marshal(UnreadEvent{Type: "unread", UserID: userID, Count: count})
	if err != nil {
		h.log.Error().Err(err).Msg("encode unread event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients[userID] {
		select {
		case c.send <- data:
		default:
		}
	}
}

func (h *Hub) readPump(userID string, conn *websocket.Conn) {
	defer h.unregister(userID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer func() {
		c.conn.WriteMessage(websocket.CloseMessage, []byte{})
		c.conn.Close()
	}()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
