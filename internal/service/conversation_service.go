package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"ai-chatlog-be/internal/dto"
	"ai-chatlog-be/internal/entity"
	"ai-chatlog-be/internal/mapper"
	"ai-chatlog-be/internal/pkg/logger"
	"ai-chatlog-be/internal/pkg/serverutils"
	"ai-chatlog-be/internal/repository/specification"
	"ai-chatlog-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IConversationService interface {
	Create(ctx context.Context, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error)
	List(ctx context.Context, req *dto.ListConversationsRequest) (*dto.ListConversationsResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowConversationResponse, error)
	End(ctx context.Context, id uuid.UUID) (*dto.EndConversationResponse, error)
}

type conversationService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	log              logger.ILogger
}

func NewConversationService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) IConversationService {
	return &conversationService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		log:              log,
	}
}

func (c *conversationService) Create(ctx context.Context, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	conversation := entity.Conversation{
		Id:        uuid.New(),
		Title:     req.Title,
		StartTime: time.Now(),
		Status:    entity.ConversationStatusActive,
		Metadata:  req.Metadata,
		CreatedAt: time.Now(),
	}

	if err := uow.ConversationRepository().Create(ctx, &conversation); err != nil {
		return nil, err
	}

	return &dto.CreateConversationResponse{Id: conversation.Id}, nil
}

func (c *conversationService) List(ctx context.Context, req *dto.ListConversationsRequest) (*dto.ListConversationsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	limit := req.Limit
	if limit == 0 {
		limit = 20
	}

	listSpecs := []specification.Specification{}
	countSpecs := []specification.Specification{}
	if req.Status != "" {
		listSpecs = append(listSpecs, specification.ByStatus{Status: req.Status})
		countSpecs = append(countSpecs, specification.ByStatus{Status: req.Status})
	}
	listSpecs = append(listSpecs,
		specification.OrderBy{Field: "start_time", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	)

	conversations, err := uow.ConversationRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	total, err := uow.ConversationRepository().Count(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListConversationsResponse{
		Conversations: make([]dto.ConversationResponse, 0, len(conversations)),
		Total:         total,
	}
	for _, conv := range conversations {
		count, err := uow.MessageRepository().Count(ctx, specification.ByConversationID{ConversationID: conv.Id})
		if err != nil {
			return nil, err
		}
		resp.Conversations = append(resp.Conversations, mapper.ConversationToResponse(conv, count))
	}

	return resp, nil
}

func (c *conversationService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowConversationResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, serverutils.NewApiError(http.StatusNotFound, "conversation not found")
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: id},
		specification.OrderBy{Field: "timestamp"},
	)
	if err != nil {
		return nil, err
	}

	resp := &dto.ShowConversationResponse{
		Conversation: mapper.ConversationToResponse(conversation, int64(len(messages))),
		Messages:     make([]dto.MessageResponse, 0, len(messages)),
	}
	for _, msg := range messages {
		resp.Messages = append(resp.Messages, mapper.MessageToResponse(msg))
	}

	return resp, nil
}

func (c *conversationService) End(ctx context.Context, id uuid.UUID) (*dto.EndConversationResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, serverutils.NewApiError(http.StatusNotFound, "conversation not found")
	}

	// Ending twice is a no-op; the original end time wins.
	if !conversation.IsEnded() {
		now := time.Now()
		conversation.Status = entity.ConversationStatusEnded
		conversation.EndTime = &now
		if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
			return nil, err
		}

		payload, err := json.Marshal(dto.AnalyzeConversationMessage{ConversationId: conversation.Id})
		if err != nil {
			return nil, err
		}
		if err := c.publisherService.Publish(ctx, payload); err != nil {
			// Analysis is best effort; the conversation is still ended.
			c.log.Error("conversation_service", "failed to publish analyze request", map[string]interface{}{
				"conversation_id": conversation.Id.String(),
				"error":           err.Error(),
			})
		}
	}

	return &dto.EndConversationResponse{
		Id:      conversation.Id,
		Status:  conversation.Status,
		EndTime: conversation.EndTime,
	}, nil
}
