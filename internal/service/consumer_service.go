package service

import (
	"context"
	"encoding/json"

	"ai-chatlog-be/internal/dto"
	"ai-chatlog-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the analysis topic and runs the full insight
// extraction for each ended conversation.
type consumerService struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	analysisService IAnalysisService
	log             logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	analysisService IAnalysisService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:          pubSub,
		topicName:       topicName,
		analysisService: analysisService,
		log:             log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.AnalyzeConversationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer_service", "failed to unmarshal analyze message", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack invalid messages to prevent infinite retry.
		msg.Ack()
		return
	}

	cs.log.Info("consumer_service", "analyzing conversation", map[string]interface{}{
		"conversation_id": payload.ConversationId.String(),
	})

	if _, err := cs.analysisService.Analyze(ctx, payload.ConversationId); err != nil {
		cs.log.Error("consumer_service", "analysis failed", map[string]interface{}{
			"conversation_id": payload.ConversationId.String(),
			"error":           err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
