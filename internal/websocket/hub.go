package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"ai-chatlog-be/internal/constant"
	"ai-chatlog-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub tracks live connections grouped by conversation and fans events out
// to every subscriber of a conversation, across instances via Redis.
type Hub struct {
	// Registered clients map: ConversationID -> list of clients
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out; nil for single-instance
	rdb *redis.Client

	// instanceId lets the subscriber skip messages this instance published
	instanceId string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceId: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ConversationId] = append(h.clients[client.ConversationId], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"conversation_id": client.ConversationId})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.ConversationId]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.ConversationId] = append(clients[:i], clients[i+1:]...)
						close(client.send)
						break
					}
				}
				if len(h.clients[client.ConversationId]) == 0 {
					delete(h.clients, client.ConversationId)
					h.logger.Info("Hub", "Conversation group empty", map[string]interface{}{"conversation_id": client.ConversationId})
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToGroup sends an event to every local subscriber of a
// conversation and publishes it to Redis for other instances.
func (h *Hub) BroadcastToGroup(conversationId uuid.UUID, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal broadcast event", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliverLocal(conversationId, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"origin":          h.instanceId,
			"conversation_id": conversationId.String(),
			"message":         json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), constant.RedisChatEventsChannel, payload)
	}
}

func (h *Hub) deliverLocal(conversationId uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := h.clients[conversationId]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{
				"conversation_id": conversationId,
			})
			// The unregister handler owns channel closure; closing here
			// too would double-close when it runs.
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, constant.RedisChatEventsChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			Origin         string          `json:"origin"`
			ConversationId string          `json:"conversation_id"`
			Message        json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
			continue
		}

		// Local delivery already happened when this instance published.
		if payload.Origin == h.instanceId {
			continue
		}

		conversationId, err := uuid.Parse(payload.ConversationId)
		if err != nil {
			continue
		}

		h.deliverLocal(conversationId, payload.Message)
	}
}
