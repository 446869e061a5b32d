package constant

// Prompt templates for chat generation, conversation analysis and
// cross-conversation query answering. Each template keeps the sampling
// budget it was tuned against next to it.

const (
	// ChatPrompt continues a conversation. Placeholders: context block,
	// latest user message.
	ChatPrompt = `You are a helpful AI assistant. Continue the conversation naturally.

%s

User: %s
Assistant:`

	ChatMaxTokens   = 512
	ChatTemperature = 0.7

	// ContextWindowMessages is how many trailing messages feed the chat
	// prompt's context block.
	ContextWindowMessages = 10

	SummaryPrompt = `Please provide a concise summary of the following conversation.
Focus on the main topics discussed, key decisions made, and important information shared.

Conversation:
%s

Summary:`

	SummaryMaxTokens   = 256
	SummaryTemperature = 0.5

	TopicsPrompt = `Extract the main topics discussed in this conversation.
Return only a comma-separated list of topics, nothing else.

Conversation:
%s

Topics:`

	TopicsMaxTokens   = 128
	TopicsTemperature = 0.3

	SentimentPrompt = `Analyze the sentiment of this conversation.
Respond with only one word: "positive", "negative", or "neutral".

Conversation:
%s

Sentiment:`

	SentimentMaxTokens   = 10
	SentimentTemperature = 0.2

	ActionItemsPrompt = `Extract any action items, tasks, or to-dos mentioned in this conversation.
Return only a comma-separated list of action items, nothing else. If there are no action items, return "None".

Conversation:
%s

Action Items:`

	ActionItemsMaxTokens   = 256
	ActionItemsTemperature = 0.3

	KeyPointsPrompt = `Extract the key points or important information from this conversation.
Return only a comma-separated list of key points, nothing else.

Conversation:
%s

Key Points:`

	KeyPointsMaxTokens   = 256
	KeyPointsTemperature = 0.4

	// QueryPrompt answers a question against retrieved past conversations.
	// Placeholders: context block, user question.
	QueryPrompt = `Based on the following past conversations, answer the user's question.
Provide a clear, concise answer and reference specific conversations when relevant.

Past Conversations:
%s

User Question: %s

Answer:`

	QueryMaxTokens   = 512
	QueryTemperature = 0.7

	// AnalysisMessageCap limits how many leading messages feed the
	// analysis prompts so long conversations stay inside the context
	// window. The summary uses the full transcript.
	AnalysisMessageCap = 20

	// ListItemCap bounds comma-split list extractions (topics, action
	// items, key points).
	ListItemCap = 10

	// RepresentativeMessageCount is how many leading messages form a
	// conversation's representative text for embedding.
	RepresentativeMessageCount = 5
)

// Fixed fallback strings returned when generation fails or there is
// nothing to work with.
const (
	FallbackEmptySummary = "Empty conversation"

	// FallbackSummaryFmt takes the message count.
	FallbackSummaryFmt = "Conversation with %d messages about various topics."

	FallbackNoRelevantConversations = "I couldn't find any relevant conversations matching your query."

	FallbackQueryGenerationError = "I found relevant conversations but encountered an error generating a response."
)
