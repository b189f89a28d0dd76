package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MatiasRiera/travelmatch-backend/internal/models"
)

// ChatStore persists chat threads per owner.
type ChatStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.ChatThread, error)
	Get(ctx context.Context, ownerID, threadID string) (*models.ChatThread, error)
	Insert(ctx context.Context, threads []models.ChatThread) error
	Save(ctx context.Context, thread *models.ChatThread) error
}

// ChatService manages a user's chat list. The list is seeded with sample
// threads on first access; sending a message appends to the thread and
// broadcasts a realtime event when a publisher is configured.
type ChatService struct {
	store     ChatStore
	publisher EventPublisher
	now       func() time.Time
}

// NewChatService builds a ChatService. publisher may be nil.
func NewChatService(store ChatStore, publisher EventPublisher) *ChatService {
	return &ChatService{store: store, publisher: publisher, now: time.Now}
}

// ListThreads returns the owner's threads, seeding the sample conversations
// on first access.
func (s *ChatService) ListThreads(ctx context.Context, ownerID string) ([]models.ChatThread, error) {
	threads, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(threads) > 0 {
		return threads, nil
	}

	seeded := SeedThreads(ownerID)
	if err := s.store.Insert(ctx, seeded); err != nil {
		return nil, err
	}
	return seeded, nil
}

// SendMessage appends a message from the owner to the thread and updates the
// thread preview. Returns models.ErrNotFound for an unknown thread.
func (s *ChatService) SendMessage(ctx context.Context, ownerID, threadID, text string) (*models.ChatThread, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", models.ErrValidation)
	}

	thread, err := s.store.Get(ctx, ownerID, threadID)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, fmt.Errorf("%w: unknown chat thread", models.ErrNotFound)
	}

	msg := models.Message{
		ID:        fmt.Sprintf("msg-%d", s.now().UnixMilli()),
		Text:      text,
		Sender:    models.SenderMe,
		Timestamp: "Now",
	}
	thread.Messages = append(thread.Messages, msg)
	thread.LastMessage = text
	thread.LastMessageTime = msg.Timestamp

	if err := s.store.Save(ctx, thread); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		// Best effort: a failed broadcast never fails the send.
		_ = s.publisher.Publish(ctx, ChatEvent{
			Type:     EventTypeMessage,
			OwnerID:  ownerID,
			ThreadID: threadID,
			Message:  &msg,
		})
	}

	return thread, nil
}

// SeedThreads returns the fixed sample conversations every new user starts
// with.
func SeedThreads(ownerID string) []models.ChatThread {
	return []models.ChatThread{
		{
			ID:              "1",
			OwnerID:         ownerID,
			Name:            "Group: Japan Trip",
			AvatarURL:       "https://picsum.photos/seed/japan/300/300",
			LastMessage:     "Did you book the hotel yet?",
			LastMessageTime: "10:30",
			Unread:          2,
			IsGroup:         true,
			Messages: []models.Message{
				{ID: "m1", Text: "Hi everyone! Excited for the trip?", Sender: models.SenderThem, Timestamp: "10:00"},
				{ID: "m2", Text: "Yes! I already have my tickets.", Sender: models.SenderMe, Timestamp: "10:05"},
				{ID: "m3", Text: "Did you book the hotel yet?", Sender: models.SenderThem, Timestamp: "10:30"},
			},
		},
		{
			ID:              "2",
			OwnerID:         ownerID,
			Name:            "Carlos Ruiz",
			AvatarURL:       "https://picsum.photos/seed/carlos/300/300",
			LastMessage:     "I love the idea of going to Kyoto.",
			LastMessageTime: "Yesterday",
			Unread:          0,
			IsGroup:         false,
			Messages: []models.Message{
				{ID: "c1", Text: "I saw you also want to visit Kyoto.", Sender: models.SenderThem, Timestamp: "Yesterday"},
				{ID: "c2", Text: "Yes! It's my favorite part of the plan.", Sender: models.SenderMe, Timestamp: "Yesterday"},
				{ID: "c3", Text: "I love the idea of going to Kyoto.", Sender: models.SenderThem, Timestamp: "Yesterday"},
			},
		},
		{
			ID:              "3",
			OwnerID:         ownerID,
			Name:            "Sarah Miller",
			AvatarURL:       "https://picsum.photos/seed/sarah/300/300",
			LastMessage:     "Hi! I saw our dates overlap.",
			LastMessageTime: "Yesterday",
			Unread:          1,
			IsGroup:         false,
			Messages: []models.Message{
				{ID: "s1", Text: "Hi! I saw our dates overlap.", Sender: models.SenderThem, Timestamp: "Yesterday"},
			},
		},
	}
}

// MongoChatStore keeps one document per thread in the "chat_threads"
// collection.
type MongoChatStore struct {
	col *mongo.Collection
}

func NewMongoChatStore(db *mongo.Database) *MongoChatStore {
	return &MongoChatStore{col: db.Collection("chat_threads")}
}

// EnsureChatIndexes configures the (owner_id, id) index used by every query.
// Called on startup from main after Mongo has connected.
func (s *MongoChatStore) EnsureChatIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner_id", Value: 1},
			{Key: "id", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("idx_owner_thread"),
	})
	return err
}

func (s *MongoChatStore) ListByOwner(ctx context.Context, ownerID string) ([]models.ChatThread, error) {
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cur, err := s.col.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var threads []models.ChatThread
	if err := cur.All(ctx, &threads); err != nil {
		return nil, err
	}
	return threads, nil
}

func (s *MongoChatStore) Get(ctx context.Context, ownerID, threadID string) (*models.ChatThread, error) {
	var thread models.ChatThread
	err := s.col.FindOne(ctx, bson.M{"owner_id": ownerID, "id": threadID}).Decode(&thread)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (s *MongoChatStore) Insert(ctx context.Context, threads []models.ChatThread) error {
	docs := make([]interface{}, len(threads))
	for i := range threads {
		docs[i] = threads[i]
	}
	_, err := s.col.InsertMany(ctx, docs)
	return err
}

func (s *MongoChatStore) Save(ctx context.Context, thread *models.ChatThread) error {
	_, err := s.col.ReplaceOne(ctx, bson.M{"owner_id": thread.OwnerID, "id": thread.ID}, thread)
	return err
}
