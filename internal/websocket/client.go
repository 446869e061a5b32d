package websocket

import (
	"context"
	"encoding/json"
	"time"

	"ai-chatlog-be/internal/dto"
	"ai-chatlog-be/internal/service"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Chat messages can be long; allow generous frames.
	maxMessageSize = 64 * 1024
)

// Client is a middleman between the websocket connection and the hub.
// It also implements service.EventSink so chat turns stream straight to
// the connection's send queue.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// ConversationId this connection is attached to
	ConversationId uuid.UUID

	chatService service.IChatService

	// Buffered channel of outbound messages.
	send chan []byte

	// cancel aborts an in-flight generation when the peer disconnects
	cancel context.CancelFunc
}

// Send marshals an event onto the outbound queue. A full queue counts as
// a dead connection.
func (c *Client) Send(event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	select {
	case c.send <- data:
		return nil
	default:
		return websocket.ErrCloseSent
	}
}

// readPump pumps messages from the websocket connection into chat turns.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.cancel()
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("WsClient", "unexpected close", map[string]interface{}{
					"conversation_id": c.ConversationId,
					"error":           err.Error(),
				})
			}
			break
		}

		var inbound dto.WsInbound
		if err := json.Unmarshal(raw, &inbound); err != nil {
			c.Send(dto.WsErrorEvent{Type: dto.WsEventError, Message: "Invalid JSON format"})
			continue
		}

		switch inbound.Type {
		case "", "message":
			if inbound.Message == "" {
				continue
			}
			if err := c.chatService.HandleUserMessage(ctx, c.ConversationId, inbound.Message, c); err != nil {
				c.Hub.logger.Error("WsClient", "chat turn failed", map[string]interface{}{
					"conversation_id": c.ConversationId,
					"error":           err.Error(),
				})
			}
		case "typing":
			c.Hub.BroadcastToGroup(c.ConversationId, dto.WsTypingEvent{
				Type:     dto.WsEventTyping,
				IsTyping: inbound.IsTyping,
			})
		}
	}
}

// writePump pumps messages from the send queue to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
