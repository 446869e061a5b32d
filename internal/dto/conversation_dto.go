package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateConversationRequest struct {
	Title    string                 `json:"title"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type CreateConversationResponse struct {
	Id uuid.UUID `json:"id"`
}

type ConversationResponse struct {
	Id           uuid.UUID              `json:"id"`
	Title        string                 `json:"title"`
	StartTime    time.Time              `json:"start_time"`
	EndTime      *time.Time             `json:"end_time,omitempty"`
	Status       string                 `json:"status"`
	Summary      string                 `json:"summary,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	MessageCount int64                  `json:"message_count"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    *time.Time             `json:"updated_at,omitempty"`
}

type MessageResponse struct {
	Id              uuid.UUID      `json:"id"`
	ConversationId  uuid.UUID      `json:"conversation_id"`
	Content         string         `json:"content"`
	Sender          string         `json:"sender"`
	Timestamp       time.Time      `json:"timestamp"`
	Reactions       map[string]int `json:"reactions,omitempty"`
	IsBookmarked    bool           `json:"is_bookmarked"`
	ParentMessageId *uuid.UUID     `json:"parent_message_id,omitempty"`
}

type ShowConversationResponse struct {
	Conversation ConversationResponse `json:"conversation"`
	Messages     []MessageResponse    `json:"messages"`
}

type ListConversationsRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=active ended"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

type ListConversationsResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
	Total         int64                  `json:"total"`
}

type EndConversationResponse struct {
	Id      uuid.UUID  `json:"id"`
	Status  string     `json:"status"`
	EndTime *time.Time `json:"end_time"`
}

type AnalysisResponse struct {
	ConversationId uuid.UUID  `json:"conversation_id"`
	Summary        string     `json:"summary"`
	Sentiment      string     `json:"sentiment"`
	Topics         []string   `json:"topics"`
	ActionItems    []string   `json:"action_items"`
	KeyPoints      []string   `json:"key_points"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

type RelatedConversationResponse struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	Similarity float64   `json:"similarity"`
}
