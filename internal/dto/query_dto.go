package dto

import (
	"time"

	"github.com/google/uuid"
)

type QueryRequest struct {
	Query string `json:"query" validate:"required"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=20"`
	From  string `json:"from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	To    string `json:"to,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type QueryExcerpt struct {
	ConversationId    uuid.UUID `json:"conversation_id"`
	ConversationTitle string    `json:"conversation_title"`
	Date              time.Time `json:"date"`
	Message           string    `json:"message"`
	Sender            string    `json:"sender"`
	Similarity        float64   `json:"similarity"`
}

type QueryResponse struct {
	Answer               string                        `json:"answer"`
	Excerpts             []QueryExcerpt                `json:"excerpts"`
	RelatedConversations []RelatedConversationResponse `json:"related_conversations"`
}
