package dto

import (
	"time"

	"github.com/google/uuid"
)

type SearchConversationsRequest struct {
	Query string `json:"query" validate:"required"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=50"`
	From  string `json:"from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	To    string `json:"to,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type ConversationSearchResult struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	Summary    string    `json:"summary,omitempty"`
	Similarity float64   `json:"similarity"`
}

type SearchConversationsResponse struct {
	Results []ConversationSearchResult `json:"results"`
}

type SearchMessagesRequest struct {
	Query          string     `json:"query" validate:"required"`
	ConversationId *uuid.UUID `json:"conversation_id,omitempty"`
	Limit          int        `json:"limit" validate:"omitempty,min=1,max=50"`
}

type MessageSearchResult struct {
	Id             uuid.UUID `json:"id"`
	ConversationId uuid.UUID `json:"conversation_id"`
	Content        string    `json:"content"`
	Sender         string    `json:"sender"`
	Timestamp      time.Time `json:"timestamp"`
	Similarity     float64   `json:"similarity"`
}

type SearchMessagesResponse struct {
	Results []MessageSearchResult `json:"results"`
}
