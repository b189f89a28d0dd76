package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MatiasRiera/travelmatch-backend/internal/models"
)

// Chat event types broadcast over Redis and WebSocket.
const (
	EventTypeMessage = "message"
	EventTypeError   = "error"
)

// chatChannelPrefix is the Redis pub/sub channel prefix; one channel per
// thread owner.
const chatChannelPrefix = "chat:user:"

// ChatEvent is the payload broadcast over Redis and delivered to WebSocket
// subscribers.
type ChatEvent struct {
	Type     string          `json:"type"`
	OwnerID  string          `json:"-"`
	ThreadID string          `json:"threadId,omitempty"`
	Message  *models.Message `json:"message,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// EventPublisher broadcasts chat events to whoever is listening.
type EventPublisher interface {
	Publish(ctx context.Context, event ChatEvent) error
}

// ChatHub fans Redis chat events out to local WebSocket subscribers. Each
// server instance runs one Redis subscriber; events reach every instance,
// so fan-out works across replicas.
type ChatHub struct {
	client *redis.Client

	mu          sync.RWMutex
	subscribers map[string][]chan ChatEvent // keyed by owner id

	started sync.Once
}

func NewChatHub(client *redis.Client) *ChatHub {
	return &ChatHub{
		client:      client,
		subscribers: make(map[string][]chan ChatEvent),
	}
}

// Publish sends an event to the owner's Redis channel.
func (h *ChatHub) Publish(ctx context.Context, event ChatEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return h.client.Publish(ctx, chatChannelPrefix+event.OwnerID, data).Err()
}

// Subscribe registers a local listener for the owner's events. The returned
// cancel function must be called when the listener goes away.
func (h *ChatHub) Subscribe(ownerID string) (<-chan ChatEvent, func()) {
	ch := make(chan ChatEvent, 16)

	h.mu.Lock()
	h.subscribers[ownerID] = append(h.subscribers[ownerID], ch)
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		chans := h.subscribers[ownerID]
		for i, c := range chans {
			if c == ch {
				h.subscribers[ownerID] = append(chans[:i], chans[i+1:]...)
				close(c)
				break
			}
		}
		if len(h.subscribers[ownerID]) == 0 {
			delete(h.subscribers, ownerID)
		}
	}
	return ch, cancel
}

// Start launches the shared Redis subscriber. Safe to call more than once.
func (h *ChatHub) Start(ctx context.Context) {
	h.started.Do(func() {
		go h.run(ctx)
	})
}

func (h *ChatHub) run(ctx context.Context) {
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := h.client.PSubscribe(ctx, chatChannelPrefix+"*")
			defer pubsub.Close()

			log.Println("✅ Chat Redis subscriber started (pattern: " + chatChannelPrefix + "*)")

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Printf("Redis subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}
				backoff = time.Second

				var event ChatEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("failed to unmarshal chat event: %v", err)
					continue
				}
				event.OwnerID = msg.Channel[len(chatChannelPrefix):]

				h.fanOut(event)
			}
		}()
	}
}

// fanOut delivers an event to the owner's local subscribers without
// blocking; slow consumers drop events.
func (h *ChatHub) fanOut(event ChatEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers[event.OwnerID] {
		select {
		case ch <- event:
		default:
		}
	}
}
