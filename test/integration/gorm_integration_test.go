package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-chatlog-be/internal/entity"
	"ai-chatlog-be/internal/repository/specification"
	"ai-chatlog-be/internal/repository/unitofwork"
	"ai-chatlog-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ConversationRepository())
	assert.NotNil(t, uow.MessageRepository())
	assert.NotNil(t, uow.AnalysisRepository())

	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	t.Run("Check Conversation Repository", func(t *testing.T) {
		count, err := uow.ConversationRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Conversation count: %d", count)
	})

	t.Run("Check Message Repository", func(t *testing.T) {
		count, err := uow.MessageRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Message count: %d", count)
	})

	t.Run("Conversation Roundtrip", func(t *testing.T) {
		ctx := context.Background()

		conversation := entity.Conversation{
			Id:        uuid.New(),
			Title:     "integration test conversation",
			StartTime: time.Now(),
			Status:    entity.ConversationStatusActive,
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.ConversationRepository().Create(ctx, &conversation))
		defer uow.ConversationRepository().Delete(ctx, conversation.Id)

		found, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversation.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, conversation.Title, found.Title)
		assert.Equal(t, entity.ConversationStatusActive, found.Status)
	})
}
