package dto

import "github.com/google/uuid"

// AnalyzeConversationMessage is the payload published to the analysis
// topic when a conversation ends.
type AnalyzeConversationMessage struct {
	ConversationId uuid.UUID `json:"conversation_id"`
}
