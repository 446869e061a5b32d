package service

import (
	"strings"

	"ai-chatlog-be/internal/entity"
)

// buildConversationText renders messages as transcript lines in the shape
// the prompt templates expect: "SENDER: content", one message per line.
func buildConversationText(messages []*entity.Message) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, strings.ToUpper(msg.Sender)+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

// capMessages bounds a slice to its first n elements.
func capMessages(messages []*entity.Message, n int) []*entity.Message {
	if len(messages) <= n {
		return messages
	}
	return messages[:n]
}
