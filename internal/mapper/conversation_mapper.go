package mapper

import (
	"time"

	"ai-chatlog-be/internal/entity"
	"ai-chatlog-be/internal/model"

	"gorm.io/datatypes"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	var metadata map[string]interface{}
	if c.Metadata != nil {
		metadata = map[string]interface{}(c.Metadata)
	}

	return &entity.Conversation{
		Id:         c.Id,
		Title:      c.Title,
		StartTime:  c.StartTime,
		EndTime:    c.EndTime,
		Status:     c.Status,
		Summary:    c.Summary,
		Metadata:   metadata,
		ShareToken: c.ShareToken,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}

	var metadata datatypes.JSONMap
	if c.Metadata != nil {
		metadata = datatypes.JSONMap(c.Metadata)
	}

	mdl := &model.Conversation{
		Id:         c.Id,
		Title:      c.Title,
		StartTime:  c.StartTime,
		EndTime:    c.EndTime,
		Status:     c.Status,
		Summary:    c.Summary,
		Metadata:   metadata,
		ShareToken: c.ShareToken,
		CreatedAt:  c.CreatedAt,
	}
	if c.UpdatedAt != nil {
		mdl.UpdatedAt = *c.UpdatedAt
	}
	return mdl
}

func (m *ConversationMapper) ToEntities(models []model.Conversation) []entity.Conversation {
	entities := make([]entity.Conversation, 0, len(models))
	for i := range models {
		entities = append(entities, *m.ToEntity(&models[i]))
	}
	return entities
}
