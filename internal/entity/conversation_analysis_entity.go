package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// ConversationAnalysis is the one-to-one derived insight record for a
// conversation. It is created or replaced wholesale, never merged.
type ConversationAnalysis struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Sentiment      string
	Topics         []string
	ActionItems    []string
	KeyPoints      []string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
