package dto

// WebSocket protocol frames. Inbound frames carry a type discriminator;
// outbound events mirror the client protocol one struct per event type.

const (
	WsEventOpen              = "open"
	WsEventUserMessage       = "user_message"
	WsEventAiMessageStart    = "ai_message_start"
	WsEventAiMessageToken    = "ai_message_token"
	WsEventAiThinking        = "ai_thinking"
	WsEventAiMessageComplete = "ai_message_complete"
	WsEventTyping            = "typing"
	WsEventError             = "error"
)

type WsInbound struct {
	Type     string `json:"type"`
	Message  string `json:"message,omitempty"`
	IsTyping bool   `json:"is_typing,omitempty"`
}

type WsOpenEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type WsUserMessageEvent struct {
	Type    string          `json:"type"`
	Message MessageResponse `json:"message"`
}

type WsAiMessageStartEvent struct {
	Type      string `json:"type"`
	MessageId string `json:"message_id"`
}

type WsAiMessageTokenEvent struct {
	Type      string `json:"type"`
	MessageId string `json:"message_id"`
	Token     string `json:"token"`
}

type WsAiThinkingEvent struct {
	Type      string `json:"type"`
	MessageId string `json:"message_id"`
	Thinking  string `json:"thinking"`
}

type WsAiMessageCompleteEvent struct {
	Type      string          `json:"type"`
	MessageId string          `json:"message_id"`
	Message   MessageResponse `json:"message"`
}

type WsTypingEvent struct {
	Type     string `json:"type"`
	IsTyping bool   `json:"is_typing"`
}

type WsErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
