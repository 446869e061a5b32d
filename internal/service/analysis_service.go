package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"ai-chatlog-be/internal/constant"
	"ai-chatlog-be/internal/dto"
	"ai-chatlog-be/internal/entity"
	"ai-chatlog-be/internal/pkg/logger"
	"ai-chatlog-be/internal/pkg/serverutils"
	"ai-chatlog-be/internal/repository/memory"
	"ai-chatlog-be/internal/repository/specification"
	"ai-chatlog-be/internal/repository/unitofwork"
	"ai-chatlog-be/pkg/events"
	"ai-chatlog-be/pkg/llm"
	pktNats "ai-chatlog-be/pkg/nats"

	"github.com/google/uuid"
)

// completionTimeout bounds single-shot generation calls. Streaming chat
// turns are exempt; only complete-style calls get a deadline, and expiry
// counts as a generation failure with the usual fallback.
const completionTimeout = 60 * time.Second

type IAnalysisService interface {
	// Analyze runs the full insight extraction for a conversation and
	// stores the result, replacing any previous analysis.
	Analyze(ctx context.Context, conversationId uuid.UUID) (*dto.AnalysisResponse, error)
	Get(ctx context.Context, conversationId uuid.UUID) (*dto.AnalysisResponse, error)
}

type analysisService struct {
	uowFactory     unitofwork.RepositoryFactory
	llmProvider    llm.LLMProvider
	embeddingCache *memory.EmbeddingCache
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewAnalysisService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	embeddingCache *memory.EmbeddingCache,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IAnalysisService {
	return &analysisService{
		uowFactory:     uowFactory,
		llmProvider:    llmProvider,
		embeddingCache: embeddingCache,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (a *analysisService) Analyze(ctx context.Context, conversationId uuid.UUID) (*dto.AnalysisResponse, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, serverutils.NewApiError(http.StatusNotFound, "conversation not found")
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "timestamp"},
	)
	if err != nil {
		return nil, err
	}

	fullText := buildConversationText(messages)
	cappedText := buildConversationText(capMessages(messages, constant.AnalysisMessageCap))

	var (
		wg          sync.WaitGroup
		summary     string
		topics      []string
		sentiment   string
		actionItems []string
		keyPoints   []string
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		summary = a.generateSummary(ctx, fullText, len(messages))
	}()
	go func() {
		defer wg.Done()
		topics = a.extractList(ctx, constant.TopicsPrompt, cappedText, constant.TopicsMaxTokens, constant.TopicsTemperature, false)
	}()
	go func() {
		defer wg.Done()
		sentiment = a.analyzeSentiment(ctx, cappedText, len(messages))
	}()
	go func() {
		defer wg.Done()
		actionItems = a.extractList(ctx, constant.ActionItemsPrompt, cappedText, constant.ActionItemsMaxTokens, constant.ActionItemsTemperature, true)
	}()
	go func() {
		defer wg.Done()
		keyPoints = a.extractList(ctx, constant.KeyPointsPrompt, cappedText, constant.KeyPointsMaxTokens, constant.KeyPointsTemperature, false)
	}()
	wg.Wait()

	analysis := entity.ConversationAnalysis{
		Id:             uuid.New(),
		ConversationId: conversationId,
		Sentiment:      sentiment,
		Topics:         topics,
		ActionItems:    actionItems,
		KeyPoints:      keyPoints,
		CreatedAt:      time.Now(),
	}
	if err := uow.AnalysisRepository().Upsert(ctx, &analysis); err != nil {
		return nil, err
	}

	conversation.Summary = summary
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return nil, err
	}

	// The summary just changed, so any cached representative-text vector
	// is stale.
	a.embeddingCache.Invalidate(conversationId)

	if a.eventPublisher != nil {
		event := events.NewConversationAnalyzed(conversationId, sentiment, len(topics))
		if err := a.eventPublisher.Publish(ctx, event); err != nil {
			a.log.Warn("analysis_service", "failed to publish analyzed event", map[string]interface{}{
				"conversation_id": conversationId.String(),
				"error":           err.Error(),
			})
		}
	}

	return analysisToResponse(&analysis, summary), nil
}

func (a *analysisService) Get(ctx context.Context, conversationId uuid.UUID) (*dto.AnalysisResponse, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, serverutils.NewApiError(http.StatusNotFound, "conversation not found")
	}

	analysis, err := uow.AnalysisRepository().FindOne(ctx, specification.ByConversationID{ConversationID: conversationId})
	if err != nil {
		return nil, err
	}
	if analysis == nil {
		return nil, serverutils.NewApiError(http.StatusNotFound, "conversation has not been analyzed")
	}

	return analysisToResponse(analysis, conversation.Summary), nil
}

func (a *analysisService) generateSummary(ctx context.Context, conversationText string, messageCount int) string {
	if messageCount == 0 {
		return constant.FallbackEmptySummary
	}

	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	prompt := fmt.Sprintf(constant.SummaryPrompt, conversationText)
	summary, err := a.llmProvider.Complete(ctx, prompt,
		llm.WithMaxTokens(constant.SummaryMaxTokens),
		llm.WithTemperature(constant.SummaryTemperature),
	)
	if err != nil {
		a.log.Warn("analysis_service", "summary generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Sprintf(constant.FallbackSummaryFmt, messageCount)
	}
	return strings.TrimSpace(summary)
}

func (a *analysisService) analyzeSentiment(ctx context.Context, conversationText string, messageCount int) string {
	if messageCount == 0 {
		return entity.SentimentNeutral
	}

	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	prompt := fmt.Sprintf(constant.SentimentPrompt, conversationText)
	response, err := a.llmProvider.Complete(ctx, prompt,
		llm.WithMaxTokens(constant.SentimentMaxTokens),
		llm.WithTemperature(constant.SentimentTemperature),
	)
	if err != nil {
		a.log.Warn("analysis_service", "sentiment analysis failed", map[string]interface{}{
			"error": err.Error(),
		})
		return entity.SentimentNeutral
	}

	sentiment := strings.ToLower(strings.TrimSpace(response))
	switch sentiment {
	case entity.SentimentPositive, entity.SentimentNegative, entity.SentimentNeutral:
		return sentiment
	}
	return entity.SentimentNeutral
}

// extractList runs a comma-separated-list prompt and splits the result.
// noneIsEmpty treats a literal "None" response as an empty list.
func (a *analysisService) extractList(ctx context.Context, promptTemplate, conversationText string, maxTokens int, temperature float64, noneIsEmpty bool) []string {
	if conversationText == "" {
		return []string{}
	}

	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	prompt := fmt.Sprintf(promptTemplate, conversationText)
	response, err := a.llmProvider.Complete(ctx, prompt,
		llm.WithMaxTokens(maxTokens),
		llm.WithTemperature(temperature),
	)
	if err != nil {
		a.log.Warn("analysis_service", "list extraction failed", map[string]interface{}{
			"error": err.Error(),
		})
		return []string{}
	}

	if noneIsEmpty && strings.EqualFold(strings.TrimSpace(response), "none") {
		return []string{}
	}

	items := make([]string, 0)
	for _, part := range strings.Split(response, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	if len(items) > constant.ListItemCap {
		items = items[:constant.ListItemCap]
	}
	return items
}

func analysisToResponse(analysis *entity.ConversationAnalysis, summary string) *dto.AnalysisResponse {
	return &dto.AnalysisResponse{
		ConversationId: analysis.ConversationId,
		Summary:        summary,
		Sentiment:      analysis.Sentiment,
		Topics:         analysis.Topics,
		ActionItems:    analysis.ActionItems,
		KeyPoints:      analysis.KeyPoints,
		CreatedAt:      analysis.CreatedAt,
		UpdatedAt:      analysis.UpdatedAt,
	}
}
