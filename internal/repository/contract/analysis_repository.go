package contract

import (
	"context"

	"ai-chatlog-be/internal/entity"
	"ai-chatlog-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AnalysisRepository interface {
	// Upsert creates the analysis row for a conversation or replaces it
	// wholesale when one already exists.
	Upsert(ctx context.Context, analysis *entity.ConversationAnalysis) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConversationAnalysis, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationAnalysis, error)
}
