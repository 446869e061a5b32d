package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ai-chatlog-be/internal/constant"
	"ai-chatlog-be/internal/dto"
	"ai-chatlog-be/internal/entity"
	"ai-chatlog-be/internal/repository/memory"
	"ai-chatlog-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryFixture(embedder *stubEmbedder, llmFake *scriptedLLM) (IQueryService, *fakeUow) {
	uow := newFakeUow()
	vectorizer := embedding.NewVectorizer(embedder, nopLogger{})
	searchSvc := NewSearchService(&fakeUowFactory{uow: uow}, vectorizer, memory.NewEmbeddingCache(), nopLogger{})
	svc := NewQueryService(searchSvc, llmFake, nopLogger{})
	return svc, uow
}

func TestProcessNoRelevantConversations(t *testing.T) {
	svc, _ := newQueryFixture(&stubEmbedder{fallback: []float32{1, 0}}, &scriptedLLM{
		completeFn: func(prompt string) (string, error) {
			t.Fatalf("no generation expected without context, got prompt: %s", prompt)
			return "", nil
		},
	})

	res, err := svc.Process(context.Background(), &dto.QueryRequest{Query: "anything"})
	require.NoError(t, err)

	assert.Equal(t, constant.FallbackNoRelevantConversations, res.Answer)
	assert.Empty(t, res.Excerpts)
	assert.Empty(t, res.RelatedConversations)
}

func TestProcessAnswersFromContext(t *testing.T) {
	embedder := &stubEmbedder{fallback: []float32{1, 0}}
	llmFake := &scriptedLLM{
		completeFn: func(prompt string) (string, error) {
			assert.Contains(t, prompt, "what did we decide")
			assert.Contains(t, prompt, "Summary: trip planning")
			assert.Contains(t, prompt, "USER: we fly on Friday")
			return "  You decided to fly on Friday. ", nil
		},
	}
	svc, uow := newQueryFixture(embedder, llmFake)

	conversation := entity.Conversation{
		Id:        uuid.New(),
		Title:     "trip",
		StartTime: time.Now(),
		Status:    entity.ConversationStatusEnded,
		Summary:   "trip planning",
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.conversations.Create(context.Background(), &conversation))

	msg := entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Content:        "we fly on Friday",
		Sender:         entity.MessageSenderUser,
		Timestamp:      time.Now(),
		Embedding:      []float32{1, 0},
		CreatedAt:      time.Now(),
	}
	require.NoError(t, uow.messages.Create(context.Background(), &msg))

	res, err := svc.Process(context.Background(), &dto.QueryRequest{Query: "what did we decide"})
	require.NoError(t, err)

	assert.Equal(t, "You decided to fly on Friday.", res.Answer)
	require.Len(t, res.Excerpts, 1)
	assert.Equal(t, conversation.Id, res.Excerpts[0].ConversationId)
	assert.Equal(t, "trip", res.Excerpts[0].ConversationTitle)
	assert.Equal(t, "we fly on Friday", res.Excerpts[0].Message)
	require.Len(t, res.RelatedConversations, 1)
	assert.Equal(t, conversation.Id, res.RelatedConversations[0].Id)
}

func TestProcessGenerationFailure(t *testing.T) {
	embedder := &stubEmbedder{fallback: []float32{1, 0}}
	llmFake := &scriptedLLM{
		completeFn: func(prompt string) (string, error) {
			return "", fmt.Errorf("backend gone")
		},
	}
	svc, uow := newQueryFixture(embedder, llmFake)

	conversation := entity.Conversation{
		Id:        uuid.New(),
		Title:     "t",
		StartTime: time.Now(),
		Status:    entity.ConversationStatusEnded,
		Summary:   "s",
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.conversations.Create(context.Background(), &conversation))

	res, err := svc.Process(context.Background(), &dto.QueryRequest{Query: "q"})
	require.NoError(t, err)

	assert.Equal(t, constant.FallbackQueryGenerationError, res.Answer)
	require.Len(t, res.RelatedConversations, 1)
}

func TestProcessBoundsGenerationWait(t *testing.T) {
	embedder := &stubEmbedder{fallback: []float32{1, 0}}
	llmFake := &scriptedLLM{
		completeFn: func(prompt string) (string, error) { return "answer", nil },
	}
	svc, uow := newQueryFixture(embedder, llmFake)

	conversation := entity.Conversation{
		Id:        uuid.New(),
		Title:     "t",
		StartTime: time.Now(),
		Status:    entity.ConversationStatusEnded,
		Summary:   "s",
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.conversations.Create(context.Background(), &conversation))

	_, err := svc.Process(context.Background(), &dto.QueryRequest{Query: "q"})
	require.NoError(t, err)

	assert.True(t, llmFake.allCompletionsBounded())
}

func TestProcessUntitledConversationGetsIdTitle(t *testing.T) {
	embedder := &stubEmbedder{fallback: []float32{1, 0}}
	llmFake := &scriptedLLM{
		completeFn: func(prompt string) (string, error) { return "answer", nil },
	}
	svc, uow := newQueryFixture(embedder, llmFake)

	conversation := entity.Conversation{
		Id:        uuid.New(),
		StartTime: time.Now(),
		Status:    entity.ConversationStatusEnded,
		Summary:   "s",
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.conversations.Create(context.Background(), &conversation))

	res, err := svc.Process(context.Background(), &dto.QueryRequest{Query: "q"})
	require.NoError(t, err)

	require.Len(t, res.RelatedConversations, 1)
	assert.Equal(t, fmt.Sprintf("Conversation %s", conversation.Id), res.RelatedConversations[0].Title)
}
