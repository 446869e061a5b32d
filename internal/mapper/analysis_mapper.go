package mapper

import (
	"time"

	"ai-chatlog-be/internal/entity"
	"ai-chatlog-be/internal/model"
)

type AnalysisMapper struct{}

func NewAnalysisMapper() *AnalysisMapper {
	return &AnalysisMapper{}
}

func (m *AnalysisMapper) ToEntity(a *model.ConversationAnalysis) *entity.ConversationAnalysis {
	if a == nil {
		return nil
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	return &entity.ConversationAnalysis{
		Id:             a.Id,
		ConversationId: a.ConversationId,
		Sentiment:      a.Sentiment,
		Topics:         jsonToStrings(a.Topics),
		ActionItems:    jsonToStrings(a.ActionItems),
		KeyPoints:      jsonToStrings(a.KeyPoints),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *AnalysisMapper) ToModel(a *entity.ConversationAnalysis) *model.ConversationAnalysis {
	if a == nil {
		return nil
	}

	mdl := &model.ConversationAnalysis{
		Id:             a.Id,
		ConversationId: a.ConversationId,
		Sentiment:      a.Sentiment,
		Topics:         stringsToJSON(a.Topics),
		ActionItems:    stringsToJSON(a.ActionItems),
		KeyPoints:      stringsToJSON(a.KeyPoints),
		CreatedAt:      a.CreatedAt,
	}
	if a.UpdatedAt != nil {
		mdl.UpdatedAt = *a.UpdatedAt
	}
	return mdl
}
