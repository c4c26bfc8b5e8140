package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// The browser client runs on a different origin (Vite dev server); CORS
	// for the REST surface is handled at the router, so mirror that here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades GET /api/ws/notifications?userId=... to a websocket and
// registers the connection with the hub.
type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}
	h.hub.Register(userID, conn)
}
