package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeConversationEnded    = "CONVERSATION_ENDED"
	TypeConversationAnalyzed = "CONVERSATION_ANALYZED"
)

func NewConversationEnded(conversationId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeConversationEnded,
		Data: map[string]interface{}{
			"conversation_id": conversationId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewConversationAnalyzed(conversationId uuid.UUID, sentiment string, topicCount int) Event {
	return BaseEvent{
		Type: TypeConversationAnalyzed,
		Data: map[string]interface{}{
			"conversation_id": conversationId.String(),
			"sentiment":       sentiment,
			"topic_count":     topicCount,
		},
		OccurredAt: time.Now(),
	}
}
