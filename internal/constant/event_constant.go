package constant

// Watermill topics for in-process background work.
const (
	TopicAnalyzeConversation = "ANALYZE_CONVERSATION"
)

// Redis channel used to fan chat events out across instances.
const (
	RedisChatEventsChannel = "chat_events"
)
