package models

// Message senders, from the thread owner's point of view.
const (
	SenderMe   = "me"
	SenderThem = "them"
)

// Message is a single chat message. Timestamp is a display label
// ("10:30", "Yesterday", "Now"), not a machine timestamp.
type Message struct {
	ID        string `bson:"id" json:"id"`
	Text      string `bson:"text" json:"text"`
	Sender    string `bson:"sender" json:"sender"`
	Timestamp string `bson:"timestamp" json:"timestamp"`
}

// ChatThread is one conversation in the owner's chat list, stored in the
// "chat_threads" collection. Threads are seeded with sample data the first
// time an owner opens their chat list.
type ChatThread struct {
	ID              string    `bson:"id" json:"id"`
	OwnerID         string    `bson:"owner_id" json:"-"`
	Name            string    `bson:"name" json:"name"`
	AvatarURL       string    `bson:"avatar_url" json:"avatarUrl"`
	LastMessage     string    `bson:"last_message" json:"lastMessage"`
	LastMessageTime string    `bson:"last_message_time" json:"lastMessageTime"`
	Unread          int       `bson:"unread" json:"unread"`
	IsGroup         bool      `bson:"is_group" json:"isGroup"`
	Messages        []Message `bson:"messages" json:"messages"`
}
