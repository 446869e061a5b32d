package service

import (
	"context"
	"fmt"

	"ai-chatlog-be/internal/pkg/logger"
	"ai-chatlog-be/pkg/events"
	pktNats "ai-chatlog-be/pkg/nats"

	"github.com/google/uuid"
)

// GroupBroadcaster pushes an event to every live subscriber of a
// conversation. The websocket hub implements it.
type GroupBroadcaster interface {
	BroadcastToGroup(conversationId uuid.UUID, event interface{})
}

type INotifierService interface {
	Start() error
}

// notifierService bridges analysis completion events from the NATS bus to
// connected websocket clients.
type notifierService struct {
	subscriber  *pktNats.Subscriber
	broadcaster GroupBroadcaster
	log         logger.ILogger
}

func NewNotifierService(
	subscriber *pktNats.Subscriber,
	broadcaster GroupBroadcaster,
	log logger.ILogger,
) INotifierService {
	return &notifierService{
		subscriber:  subscriber,
		broadcaster: broadcaster,
		log:         log,
	}
}

func (n *notifierService) Start() error {
	subject := fmt.Sprintf("events.%s", events.TypeConversationAnalyzed)
	return n.subscriber.Subscribe(subject, "chatlog-notifier", n.handleAnalyzed)
}

func (n *notifierService) handleAnalyzed(ctx context.Context, event events.Event) error {
	raw, ok := event.Payload()["conversation_id"].(string)
	if !ok {
		n.log.Warn("notifier_service", "analyzed event missing conversation_id", nil)
		return nil
	}

	conversationId, err := uuid.Parse(raw)
	if err != nil {
		n.log.Warn("notifier_service", "analyzed event has invalid conversation_id", map[string]interface{}{
			"conversation_id": raw,
		})
		return nil
	}

	n.broadcaster.BroadcastToGroup(conversationId, map[string]interface{}{
		"type":            "analysis_complete",
		"conversation_id": conversationId.String(),
	})
	return nil
}
