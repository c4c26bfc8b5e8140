package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func TestPushUnreadReachesSubscriber(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	handler := NewHandler(hub)

	srv := httptest.NewServer(http.HandlerFunc(handler.Subscribe))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?userId=U1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The server registers the connection just after the upgrade; keep
	// pushing until the client sees a frame.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				hub.PushUnread("U1", 3)
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var event UnreadEvent
	if err := json.Unmarshal(frame, &event); err != nil {
		t.Fatalf("decode frame %q: %v", frame, err)
	}
	if event.Type != "unread" || event.UserID != "U1" || event.Count != 3 {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestPushUnreadIgnoresOtherUsers(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	handler := NewHandler(hub)

	srv := httptest.NewServer(http.HandlerFunc(handler.Subscribe))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?userId=U1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	hub.PushUnread("U2", 5)

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("received a frame addressed to another user")
	}
}

func TestSubscribeRequiresUserID(t *testing.T) {
	handler := NewHandler(NewHub(zerolog.Nop()))

	req := httptest.NewRequest(http.MethodGet, "/api/ws/notifications", nil)
	rec := httptest.NewRecorder()
	handler.Subscribe(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code: got %d, want 400", rec.Code)
	}
}
