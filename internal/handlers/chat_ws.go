package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MatiasRiera/travelmatch-backend/internal/services"
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// chatClientMessage represents messages coming from the client over the
// WebSocket.
type chatClientMessage struct {
	Type     string `json:"type"` // "message", "ping"
	ThreadID string `json:"threadId"`
	Text     string `json:"text,omitempty"`
}

// ChatWSHandler streams chat events to the client and accepts messages over
// a WebSocket connection.
type ChatWSHandler struct {
	chats    ChatServicer
	hub      *services.ChatHub
	sessions SessionStore
}

func NewChatWSHandler(chats ChatServicer, hub *services.ChatHub, sessions SessionStore) *ChatWSHandler {
	return &ChatWSHandler{chats: chats, hub: hub, sessions: sessions}
}

// Serve handles GET /ws/chat. The session token may arrive as a bearer
// header or a `token` query parameter, browser WebSocket clients can't set
// headers.
func (h *ChatWSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	ownerID := resolveUserID(r, h.sessions)

	conn, err := chatUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, unsubscribe := h.hub.Subscribe(ownerID)
	defer unsubscribe()

	// Gorilla connections allow one concurrent writer; the hub goroutine and
	// the read loop below share the connection.
	var writeMu sync.Mutex
	writeJSON := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	// Writer: forward hub events to this connection.
	go func() {
		for evt := range events {
			if err := writeJSON(evt); err != nil {
				return
			}
		}
	}()

	conn.SetReadLimit(64 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg chatClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "message":
			// SendMessage publishes to the hub, so the sender sees their own
			// message come back as an event.
			if _, err := h.chats.SendMessage(r.Context(), ownerID, msg.ThreadID, msg.Text); err != nil {
				_ = writeJSON(services.ChatEvent{
					Type:     services.EventTypeError,
					ThreadID: msg.ThreadID,
					Error:    "failed to send message",
				})
			}
		case "ping":
			_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		default:
			// Ignore unknown types
		}
	}
}
