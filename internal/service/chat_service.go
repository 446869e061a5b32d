package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ai-chatlog-be/internal/constant"
	"ai-chatlog-be/internal/dto"
	"ai-chatlog-be/internal/entity"
	"ai-chatlog-be/internal/mapper"
	"ai-chatlog-be/internal/pkg/logger"
	"ai-chatlog-be/internal/pkg/serverutils"
	"ai-chatlog-be/internal/repository/specification"
	"ai-chatlog-be/internal/repository/unitofwork"
	"ai-chatlog-be/pkg/ai/reasoning"
	"ai-chatlog-be/pkg/embedding"
	"ai-chatlog-be/pkg/llm"

	"github.com/google/uuid"
)

// EventSink receives the protocol events produced during a chat turn.
// The websocket client implements it; tests use an in-memory recorder.
type EventSink interface {
	Send(event interface{}) error
}

type IChatService interface {
	// HandleUserMessage runs one full chat turn: persist the user message,
	// echo it, stream the generated reply through the sink, and persist
	// the final assistant message.
	HandleUserMessage(ctx context.Context, conversationId uuid.UUID, content string, sink EventSink) error
}

type chatService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	vectorizer  *embedding.Vectorizer
	log         logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	vectorizer *embedding.Vectorizer,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		vectorizer:  vectorizer,
		log:         log,
	}
}

func (c *chatService) HandleUserMessage(ctx context.Context, conversationId uuid.UUID, content string, sink EventSink) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return err
	}
	if conversation == nil {
		sink.Send(dto.WsErrorEvent{Type: dto.WsEventError, Message: "Conversation not found"})
		return serverutils.NewApiError(http.StatusNotFound, "conversation not found")
	}

	userMsg := entity.Message{
		Id:             uuid.New(),
		ConversationId: conversationId,
		Content:        content,
		Sender:         entity.MessageSenderUser,
		Timestamp:      time.Now(),
		CreatedAt:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &userMsg); err != nil {
		return err
	}

	if err := sink.Send(dto.WsUserMessageEvent{
		Type:    dto.WsEventUserMessage,
		Message: mapper.MessageToResponse(&userMsg),
	}); err != nil {
		return err
	}

	// Embed the user message in the background of the turn; generation
	// does not wait for it.
	if vec, ok := c.vectorizer.Embed(ctx, userMsg.Content); ok {
		if err := uow.MessageRepository().UpdateEmbedding(ctx, userMsg.Id, vec); err != nil {
			c.log.Warn("chat_service", "failed to store user message embedding", map[string]interface{}{
				"message_id": userMsg.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	return c.generateReply(ctx, uow, conversationId, content, sink)
}

func (c *chatService) generateReply(ctx context.Context, uow unitofwork.UnitOfWork, conversationId uuid.UUID, userMessage string, sink EventSink) error {
	recent, err := uow.MessageRepository().FindRecent(ctx, conversationId, constant.ContextWindowMessages)
	if err != nil {
		return err
	}
	contextBlock := buildConversationText(recent)

	prompt := fmt.Sprintf(constant.ChatPrompt, contextBlock, userMessage)

	aiMsg := entity.Message{
		Id:             uuid.New(),
		ConversationId: conversationId,
		Content:        "",
		Sender:         entity.MessageSenderAI,
		Timestamp:      time.Now(),
		CreatedAt:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &aiMsg); err != nil {
		return err
	}

	if err := sink.Send(dto.WsAiMessageStartEvent{
		Type:      dto.WsEventAiMessageStart,
		MessageId: aiMsg.Id.String(),
	}); err != nil {
		return err
	}

	chunks, err := c.llmProvider.Stream(ctx, prompt,
		llm.WithMaxTokens(constant.ChatMaxTokens),
		llm.WithTemperature(constant.ChatTemperature),
	)
	if err != nil {
		return c.failTurn(ctx, uow, &aiMsg, sink, err)
	}

	scanner := reasoning.NewScanner()

	for chunk := range chunks {
		if chunk.Err != nil {
			return c.failTurn(ctx, uow, &aiMsg, sink, chunk.Err)
		}
		if err := c.emitEvents(scanner.Feed(chunk.Text), aiMsg.Id, sink); err != nil {
			return err
		}
	}
	if err := c.emitEvents(scanner.Finish(), aiMsg.Id, sink); err != nil {
		return err
	}

	cleaned := strings.TrimSpace(scanner.Cleaned())
	aiMsg.Content = cleaned
	if err := uow.MessageRepository().Update(ctx, &aiMsg); err != nil {
		return err
	}

	// Embedding failures never fail the turn.
	if vec, ok := c.vectorizer.Embed(ctx, cleaned); ok {
		if err := uow.MessageRepository().UpdateEmbedding(ctx, aiMsg.Id, vec); err != nil {
			c.log.Warn("chat_service", "failed to store ai message embedding", map[string]interface{}{
				"message_id": aiMsg.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	return sink.Send(dto.WsAiMessageCompleteEvent{
		Type:      dto.WsEventAiMessageComplete,
		MessageId: aiMsg.Id.String(),
		Message:   mapper.MessageToResponse(&aiMsg),
	})
}

func (c *chatService) emitEvents(events []reasoning.Event, messageId uuid.UUID, sink EventSink) error {
	for _, ev := range events {
		switch ev.Kind {
		case reasoning.EventVisible:
			if err := sink.Send(dto.WsAiMessageTokenEvent{
				Type:      dto.WsEventAiMessageToken,
				MessageId: messageId.String(),
				Token:     ev.Text,
			}); err != nil {
				return err
			}
		case reasoning.EventReasoning:
			if err := sink.Send(dto.WsAiThinkingEvent{
				Type:      dto.WsEventAiThinking,
				MessageId: messageId.String(),
				Thinking:  ev.Text,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// failTurn persists the error as the assistant message content so the
// transcript records the failed turn, then reports it to the client.
func (c *chatService) failTurn(ctx context.Context, uow unitofwork.UnitOfWork, aiMsg *entity.Message, sink EventSink, cause error) error {
	errMsg := fmt.Sprintf("Error generating response: %s", cause.Error())
	aiMsg.Content = errMsg
	if err := uow.MessageRepository().Update(ctx, aiMsg); err != nil {
		c.log.Error("chat_service", "failed to persist error message", map[string]interface{}{
			"message_id": aiMsg.Id.String(),
			"error":      err.Error(),
		})
	}
	return sink.Send(dto.WsErrorEvent{Type: dto.WsEventError, Message: errMsg})
}
