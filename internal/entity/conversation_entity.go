package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ConversationStatusActive = "active"
	ConversationStatusEnded  = "ended"
)

// Conversation is one logged chat. Invariant: EndTime is set iff Status
// is ended.
type Conversation struct {
	Id         uuid.UUID
	Title      string
	StartTime  time.Time
	EndTime    *time.Time
	Status     string
	Summary    string
	Metadata   map[string]interface{}
	ShareToken *string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

func (c *Conversation) IsEnded() bool {
	return c.Status == ConversationStatusEnded
}
