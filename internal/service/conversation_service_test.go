package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"ai-chatlog-be/internal/dto"
	"ai-chatlog-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorderPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (r *recorderPublisher) Publish(ctx context.Context, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, payload)
	return nil
}

func (r *recorderPublisher) published() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]byte(nil), r.payloads...)
}

func newConversationFixture() (IConversationService, *fakeUow, *recorderPublisher) {
	uow := newFakeUow()
	publisher := &recorderPublisher{}
	svc := NewConversationService(&fakeUowFactory{uow: uow}, publisher, nopLogger{})
	return svc, uow, publisher
}

func TestCreateConversation(t *testing.T) {
	svc, uow, _ := newConversationFixture()

	res, err := svc.Create(context.Background(), &dto.CreateConversationRequest{
		Title:    "weekend plans",
		Metadata: map[string]interface{}{"source": "mobile"},
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, res.Id)

	stored := uow.conversations.items[res.Id]
	require.NotNil(t, stored)
	assert.Equal(t, "weekend plans", stored.Title)
	assert.Equal(t, entity.ConversationStatusActive, stored.Status)
	assert.Equal(t, "mobile", stored.Metadata["source"])
}

func TestListConversationsFiltersAndCounts(t *testing.T) {
	svc, uow, _ := newConversationFixture()

	active := entity.Conversation{
		Id:        uuid.New(),
		Title:     "active one",
		StartTime: time.Now(),
		Status:    entity.ConversationStatusActive,
		CreatedAt: time.Now(),
	}
	ended := entity.Conversation{
		Id:        uuid.New(),
		Title:     "ended one",
		StartTime: time.Now().Add(-time.Hour),
		Status:    entity.ConversationStatusEnded,
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.conversations.Create(context.Background(), &active))
	require.NoError(t, uow.conversations.Create(context.Background(), &ended))

	msg := entity.Message{
		Id:             uuid.New(),
		ConversationId: active.Id,
		Content:        "hi",
		Sender:         entity.MessageSenderUser,
		Timestamp:      time.Now(),
		CreatedAt:      time.Now(),
	}
	require.NoError(t, uow.messages.Create(context.Background(), &msg))

	res, err := svc.List(context.Background(), &dto.ListConversationsRequest{Status: entity.ConversationStatusActive})
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.Total)
	require.Len(t, res.Conversations, 1)
	assert.Equal(t, active.Id, res.Conversations[0].Id)
	assert.Equal(t, int64(1), res.Conversations[0].MessageCount)
}

func TestShowConversationNotFound(t *testing.T) {
	svc, _, _ := newConversationFixture()

	_, err := svc.Show(context.Background(), uuid.New())
	require.Error(t, err)
}

func TestEndConversationPublishesAnalyzeRequest(t *testing.T) {
	svc, uow, publisher := newConversationFixture()

	conversation := entity.Conversation{
		Id:        uuid.New(),
		Title:     "t",
		StartTime: time.Now(),
		Status:    entity.ConversationStatusActive,
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.conversations.Create(context.Background(), &conversation))

	res, err := svc.End(context.Background(), conversation.Id)
	require.NoError(t, err)
	assert.Equal(t, entity.ConversationStatusEnded, res.Status)
	require.NotNil(t, res.EndTime)

	published := publisher.published()
	require.Len(t, published, 1)
	var payload dto.AnalyzeConversationMessage
	require.NoError(t, json.Unmarshal(published[0], &payload))
	assert.Equal(t, conversation.Id, payload.ConversationId)
}

func TestEndConversationIsIdempotent(t *testing.T) {
	svc, uow, publisher := newConversationFixture()

	conversation := entity.Conversation{
		Id:        uuid.New(),
		Title:     "t",
		StartTime: time.Now(),
		Status:    entity.ConversationStatusActive,
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.conversations.Create(context.Background(), &conversation))

	first, err := svc.End(context.Background(), conversation.Id)
	require.NoError(t, err)
	second, err := svc.End(context.Background(), conversation.Id)
	require.NoError(t, err)

	// The original end time wins and the analyze request fires once.
	assert.Equal(t, first.EndTime.Unix(), second.EndTime.Unix())
	assert.Len(t, publisher.published(), 1)
}
