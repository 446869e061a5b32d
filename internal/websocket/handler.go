package websocket

import (
	"context"

	"ai-chatlog-be/internal/dto"
	"ai-chatlog-be/internal/service"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches a websocket connection to a conversation group and
// runs its pumps until the peer disconnects.
func ServeWs(hub *Hub, conn *websocket.Conn, conversationId uuid.UUID, chatService service.IChatService) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &Client{
		Hub:            hub,
		Conn:           conn,
		ConversationId: conversationId,
		chatService:    chatService,
		send:           make(chan []byte, 256),
		cancel:         cancel,
	}
	client.Hub.register <- client

	client.Send(dto.WsOpenEvent{
		Type:    dto.WsEventOpen,
		Message: "WebSocket connected successfully",
	})

	go client.writePump()
	// readPump runs in the handler goroutine; returning tears the
	// connection down.
	client.readPump(ctx)
}
