package mapper

import (
	"encoding/json"

	"ai-chatlog-be/internal/entity"
	"ai-chatlog-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	var embedding []float32
	if msg.Embedding != nil {
		embedding = msg.Embedding.Slice()
	}

	var reactions map[string]int
	if msg.Reactions != nil {
		reactions = make(map[string]int, len(msg.Reactions))
		for k, v := range msg.Reactions {
			// JSONMap decodes numbers as float64
			if f, ok := v.(float64); ok {
				reactions[k] = int(f)
			}
		}
	}

	return &entity.Message{
		Id:              msg.Id,
		ConversationId:  msg.ConversationId,
		Content:         msg.Content,
		Sender:          msg.Sender,
		Timestamp:       msg.Timestamp,
		Embedding:       embedding,
		Reactions:       reactions,
		IsBookmarked:    msg.IsBookmarked,
		ParentMessageId: msg.ParentMessageId,
		CreatedAt:       msg.CreatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	var embedding *pgvector.Vector
	if msg.Embedding != nil {
		v := pgvector.NewVector(msg.Embedding)
		embedding = &v
	}

	var reactions datatypes.JSONMap
	if msg.Reactions != nil {
		reactions = make(datatypes.JSONMap, len(msg.Reactions))
		for k, v := range msg.Reactions {
			reactions[k] = v
		}
	}

	return &model.Message{
		Id:              msg.Id,
		ConversationId:  msg.ConversationId,
		Content:         msg.Content,
		Sender:          msg.Sender,
		Timestamp:       msg.Timestamp,
		Embedding:       embedding,
		Reactions:       reactions,
		IsBookmarked:    msg.IsBookmarked,
		ParentMessageId: msg.ParentMessageId,
		CreatedAt:       msg.CreatedAt,
	}
}

func (m *MessageMapper) ToEntities(models []model.Message) []entity.Message {
	entities := make([]entity.Message, 0, len(models))
	for i := range models {
		entities = append(entities, *m.ToEntity(&models[i]))
	}
	return entities
}

// jsonToStrings decodes a jsonb array column into a string slice. Shared by
// the analysis mapper; a nil or invalid column yields an empty slice so
// callers never range over nil.
func jsonToStrings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}

func stringsToJSON(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(raw)
}
