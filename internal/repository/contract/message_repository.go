package contract

import (
	"context"

	"ai-chatlog-be/internal/entity"
	"ai-chatlog-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	Update(ctx context.Context, message *entity.Message) error
	// UpdateEmbedding writes only the embedding column so a late vector
	// computation never clobbers concurrent content edits.
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	// FindRecent returns the newest messages of a conversation in
	// chronological order, capped at limit.
	FindRecent(ctx context.Context, conversationId uuid.UUID, limit int) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
