package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MatiasRiera/travelmatch-backend/internal/models"
)

// ChatServicer is the slice of ChatService the chat endpoints need.
type ChatServicer interface {
	ListThreads(ctx context.Context, ownerID string) ([]models.ChatThread, error)
	SendMessage(ctx context.Context, ownerID, threadID, text string) (*models.ChatThread, error)
}

// ChatHandler serves the chat list and message sending.
type ChatHandler struct {
	chats    ChatServicer
	sessions SessionStore
}

func NewChatHandler(chats ChatServicer, sessions SessionStore) *ChatHandler {
	return &ChatHandler{chats: chats, sessions: sessions}
}

// ListThreads handles GET /api/chats.
func (h *ChatHandler) ListThreads(w http.ResponseWriter, r *http.Request) {
	ownerID := resolveUserID(r, h.sessions)

	threads, err := h.chats.ListThreads(r.Context(), ownerID)
	if err != nil {
		log.Printf("failed to list chats for %s: %v", ownerID, err)
		writeError(w, http.StatusInternalServerError, "failed to load chats")
		return
	}

	writeJSON(w, http.StatusOK, threads)
}

// sendMessageRequest is the POST /api/chats/{id}/messages body.
type sendMessageRequest struct {
	Text string `json:"text"`
}

// SendMessage handles POST /api/chats/{id}/messages.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "id")
	ownerID := resolveUserID(r, h.sessions)

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	thread, err := h.chats.SendMessage(r.Context(), ownerID, threadID, req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, thread)
}
