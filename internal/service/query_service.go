package service

import (
	"context"
	"fmt"
	"strings"

	"ai-chatlog-be/internal/constant"
	"ai-chatlog-be/internal/dto"
	"ai-chatlog-be/internal/pkg/logger"
	"ai-chatlog-be/pkg/llm"

	"github.com/google/uuid"
)

const queryExcerptCap = 10

type IQueryService interface {
	Process(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error)
}

type queryService struct {
	searchService ISearchService
	llmProvider   llm.LLMProvider
	log           logger.ILogger
}

func NewQueryService(
	searchService ISearchService,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) IQueryService {
	return &queryService{
		searchService: searchService,
		llmProvider:   llmProvider,
		log:           log,
	}
}

func (q *queryService) Process(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = defaultSearchLimit
	}

	relevant, err := q.searchService.SearchConversations(ctx, &dto.SearchConversationsRequest{
		Query: req.Query,
		Limit: limit,
		From:  req.From,
		To:    req.To,
	})
	if err != nil {
		return nil, err
	}

	if len(relevant.Results) == 0 {
		return &dto.QueryResponse{
			Answer:               constant.FallbackNoRelevantConversations,
			Excerpts:             []dto.QueryExcerpt{},
			RelatedConversations: []dto.RelatedConversationResponse{},
		}, nil
	}

	contextParts := make([]string, 0, len(relevant.Results))
	excerpts := make([]dto.QueryExcerpt, 0)

	for _, conv := range relevant.Results {
		convId := conv.Id
		matches, err := q.searchService.SearchMessages(ctx, &dto.SearchMessagesRequest{
			Query:          req.Query,
			ConversationId: &convId,
			Limit:          relatedMessageLimit,
		})
		if err != nil {
			return nil, err
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Conversation from %s:\n", conv.Date.Format("2006-01-02"))
		if conv.Summary != "" {
			fmt.Fprintf(&sb, "Summary: %s\n", conv.Summary)
		}
		for _, msg := range matches.Results {
			fmt.Fprintf(&sb, "%s: %s\n", strings.ToUpper(msg.Sender), msg.Content)
			excerpts = append(excerpts, dto.QueryExcerpt{
				ConversationId:    conv.Id,
				ConversationTitle: conversationTitle(conv.Id, conv.Title),
				Date:              conv.Date,
				Message:           msg.Content,
				Sender:            msg.Sender,
				Similarity:        msg.Similarity,
			})
		}

		contextParts = append(contextParts, sb.String())
	}

	prompt := fmt.Sprintf(constant.QueryPrompt, strings.Join(contextParts, "\n\n"), req.Query)

	genCtx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	answer, err := q.llmProvider.Complete(genCtx, prompt,
		llm.WithMaxTokens(constant.QueryMaxTokens),
		llm.WithTemperature(constant.QueryTemperature),
	)
	if err != nil {
		q.log.Error("query_service", "failed to generate answer", map[string]interface{}{
			"error": err.Error(),
		})
		answer = constant.FallbackQueryGenerationError
	}

	if len(excerpts) > queryExcerptCap {
		excerpts = excerpts[:queryExcerptCap]
	}

	related := make([]dto.RelatedConversationResponse, 0, len(relevant.Results))
	for _, conv := range relevant.Results {
		related = append(related, dto.RelatedConversationResponse{
			Id:         conv.Id,
			Title:      conversationTitle(conv.Id, conv.Title),
			Date:       conv.Date,
			Similarity: conv.Similarity,
		})
	}
	if len(related) > defaultSearchLimit {
		related = related[:defaultSearchLimit]
	}

	return &dto.QueryResponse{
		Answer:               strings.TrimSpace(answer),
		Excerpts:             excerpts,
		RelatedConversations: related,
	}, nil
}

// conversationTitle substitutes an id-based title for untitled
// conversations so clients always have something to display.
func conversationTitle(id uuid.UUID, title string) string {
	if title != "" {
		return title
	}
	return fmt.Sprintf("Conversation %s", id)
}
