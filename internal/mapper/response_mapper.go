package mapper

import (
	"ai-chatlog-be/internal/dto"
	"ai-chatlog-be/internal/entity"
)

// Response mappers shared by the conversation and chat surfaces.

func ConversationToResponse(c *entity.Conversation, messageCount int64) dto.ConversationResponse {
	return dto.ConversationResponse{
		Id:           c.Id,
		Title:        c.Title,
		StartTime:    c.StartTime,
		EndTime:      c.EndTime,
		Status:       c.Status,
		Summary:      c.Summary,
		Metadata:     c.Metadata,
		MessageCount: messageCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func MessageToResponse(m *entity.Message) dto.MessageResponse {
	return dto.MessageResponse{
		Id:              m.Id,
		ConversationId:  m.ConversationId,
		Content:         m.Content,
		Sender:          m.Sender,
		Timestamp:       m.Timestamp,
		Reactions:       m.Reactions,
		IsBookmarked:    m.IsBookmarked,
		ParentMessageId: m.ParentMessageId,
	}
}
