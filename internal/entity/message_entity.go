package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MessageSenderUser = "user"
	MessageSenderAI   = "ai"
)

// Message belongs to exactly one conversation; messages are totally
// ordered by Timestamp within it. Embedding is lazily populated and, once
// computed, is never silently invalidated by content writes.
type Message struct {
	Id              uuid.UUID
	ConversationId  uuid.UUID
	Content         string
	Sender          string
	Timestamp       time.Time
	Embedding       []float32 // nil until computed
	Reactions       map[string]int
	IsBookmarked    bool
	ParentMessageId *uuid.UUID
	CreatedAt       time.Time
}
