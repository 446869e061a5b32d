package unitofwork

import (
	"context"

	"ai-chatlog-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
	AnalysisRepository() contract.AnalysisRepository
}
