package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"ai-chatlog-be/internal/constant"
	"ai-chatlog-be/internal/dto"
	"ai-chatlog-be/internal/entity"
	"ai-chatlog-be/internal/pkg/logger"
	"ai-chatlog-be/internal/pkg/serverutils"
	"ai-chatlog-be/internal/repository/memory"
	"ai-chatlog-be/internal/repository/specification"
	"ai-chatlog-be/internal/repository/unitofwork"
	"ai-chatlog-be/pkg/embedding"
	"ai-chatlog-be/pkg/similarity"

	"github.com/google/uuid"
)

const (
	defaultSearchLimit  = 5
	relatedMessageLimit = 3
)

type ISearchService interface {
	SearchConversations(ctx context.Context, req *dto.SearchConversationsRequest) (*dto.SearchConversationsResponse, error)
	SearchMessages(ctx context.Context, req *dto.SearchMessagesRequest) (*dto.SearchMessagesResponse, error)
	Related(ctx context.Context, conversationId uuid.UUID, limit int) ([]dto.RelatedConversationResponse, error)
}

type searchService struct {
	uowFactory     unitofwork.RepositoryFactory
	vectorizer     *embedding.Vectorizer
	embeddingCache *memory.EmbeddingCache
	log            logger.ILogger
}

func NewSearchService(
	uowFactory unitofwork.RepositoryFactory,
	vectorizer *embedding.Vectorizer,
	embeddingCache *memory.EmbeddingCache,
	log logger.ILogger,
) ISearchService {
	return &searchService{
		uowFactory:     uowFactory,
		vectorizer:     vectorizer,
		embeddingCache: embeddingCache,
		log:            log,
	}
}

func (s *searchService) SearchConversations(ctx context.Context, req *dto.SearchConversationsRequest) (*dto.SearchConversationsResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = defaultSearchLimit
	}

	queryVec, ok := s.vectorizer.Embed(ctx, req.Query)
	if !ok {
		// Without a query vector there is nothing to rank against.
		return &dto.SearchConversationsResponse{Results: []dto.ConversationSearchResult{}}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Only ended conversations take part in retrieval; live ones have no
	// settled representative text yet.
	specs := []specification.Specification{
		specification.ByStatus{Status: entity.ConversationStatusEnded},
	}
	if between, err := dateRangeSpec(req.From, req.To); err != nil {
		return nil, err
	} else if between != nil {
		specs = append(specs, *between)
	}

	conversations, err := uow.ConversationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	byId := make(map[uuid.UUID]*entity.Conversation, len(conversations))
	candidates := make([]similarity.Candidate, 0, len(conversations))
	for _, conv := range conversations {
		vec, err := s.conversationVector(ctx, uow, conv)
		if err != nil {
			return nil, err
		}
		if vec == nil {
			// No embeddable representative text; excluded rather than
			// scored zero.
			continue
		}
		byId[conv.Id] = conv
		candidates = append(candidates, similarity.Candidate{ID: conv.Id, Vector: vec})
	}

	ranked := similarity.Rank(queryVec, candidates)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	results := make([]dto.ConversationSearchResult, 0, len(ranked))
	for _, r := range ranked {
		conv := byId[r.ID]
		results = append(results, dto.ConversationSearchResult{
			Id:         conv.Id,
			Title:      conv.Title,
			Date:       conv.StartTime,
			Summary:    conv.Summary,
			Similarity: r.Score,
		})
	}

	return &dto.SearchConversationsResponse{Results: results}, nil
}

func (s *searchService) SearchMessages(ctx context.Context, req *dto.SearchMessagesRequest) (*dto.SearchMessagesResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = defaultSearchLimit
	}

	queryVec, ok := s.vectorizer.Embed(ctx, req.Query)
	if !ok {
		return &dto.SearchMessagesResponse{Results: []dto.MessageSearchResult{}}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	if req.ConversationId != nil {
		specs = append(specs, specification.ByConversationID{ConversationID: *req.ConversationId})
	}

	messages, err := uow.MessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	byId := make(map[uuid.UUID]*entity.Message, len(messages))
	candidates := make([]similarity.Candidate, 0, len(messages))
	for _, msg := range messages {
		if msg.Content == "" {
			continue
		}
		vec := msg.Embedding
		if vec == nil {
			// Lazy write-through: vectorize on first search that touches
			// the message, persist for the next one.
			if computed, ok := s.vectorizer.Embed(ctx, msg.Content); ok {
				vec = computed
				if err := uow.MessageRepository().UpdateEmbedding(ctx, msg.Id, computed); err != nil {
					s.log.Warn("search_service", "failed to persist message embedding", map[string]interface{}{
						"message_id": msg.Id.String(),
						"error":      err.Error(),
					})
				}
			}
		}
		if vec == nil {
			continue
		}
		byId[msg.Id] = msg
		candidates = append(candidates, similarity.Candidate{ID: msg.Id, Vector: vec})
	}

	ranked := similarity.Rank(queryVec, candidates)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	results := make([]dto.MessageSearchResult, 0, len(ranked))
	for _, r := range ranked {
		msg := byId[r.ID]
		results = append(results, dto.MessageSearchResult{
			Id:             msg.Id,
			ConversationId: msg.ConversationId,
			Content:        msg.Content,
			Sender:         msg.Sender,
			Timestamp:      msg.Timestamp,
			Similarity:     r.Score,
		})
	}

	return &dto.SearchMessagesResponse{Results: results}, nil
}

func (s *searchService) Related(ctx context.Context, conversationId uuid.UUID, limit int) ([]dto.RelatedConversationResponse, error) {
	if limit == 0 {
		limit = defaultSearchLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	source, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, serverutils.NewApiError(http.StatusNotFound, "conversation not found")
	}

	sourceVec, err := s.conversationVector(ctx, uow, source)
	if err != nil {
		return nil, err
	}
	if sourceVec == nil {
		return []dto.RelatedConversationResponse{}, nil
	}

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.ByStatus{Status: entity.ConversationStatusEnded},
	)
	if err != nil {
		return nil, err
	}

	byId := make(map[uuid.UUID]*entity.Conversation, len(conversations))
	candidates := make([]similarity.Candidate, 0, len(conversations))
	for _, conv := range conversations {
		if conv.Id == conversationId {
			continue
		}
		vec, err := s.conversationVector(ctx, uow, conv)
		if err != nil {
			return nil, err
		}
		if vec == nil {
			continue
		}
		byId[conv.Id] = conv
		candidates = append(candidates, similarity.Candidate{ID: conv.Id, Vector: vec})
	}

	ranked := similarity.Rank(sourceVec, candidates)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	results := make([]dto.RelatedConversationResponse, 0, len(ranked))
	for _, r := range ranked {
		conv := byId[r.ID]
		results = append(results, dto.RelatedConversationResponse{
			Id:         conv.Id,
			Title:      conv.Title,
			Date:       conv.StartTime,
			Similarity: r.Score,
		})
	}

	return results, nil
}

// conversationVector returns the embedding of a conversation's
// representative text: its summary when analyzed, otherwise the first few
// messages. Vectors are cached; a conversation that cannot be vectorized
// yields nil and simply ranks last.
func (s *searchService) conversationVector(ctx context.Context, uow unitofwork.UnitOfWork, conv *entity.Conversation) ([]float32, error) {
	if vec, found := s.embeddingCache.Get(conv.Id); found {
		return vec, nil
	}

	text := conv.Summary
	if text == "" {
		messages, err := uow.MessageRepository().FindAll(ctx,
			specification.ByConversationID{ConversationID: conv.Id},
			specification.OrderBy{Field: "timestamp"},
			specification.Pagination{Limit: constant.RepresentativeMessageCount, Offset: 0},
		)
		if err != nil {
			return nil, err
		}
		text = representativeText(messages)
	}

	vec, ok := s.vectorizer.Embed(ctx, text)
	if !ok {
		return nil, nil
	}

	s.embeddingCache.Save(conv.Id, vec)
	return vec, nil
}

// representativeText joins raw message contents with spaces. Unlike the
// role-tagged transcript fed to prompts, the retrieval text carries no
// sender labels.
func representativeText(messages []*entity.Message) string {
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		if msg.Content != "" {
			parts = append(parts, msg.Content)
		}
	}
	return strings.Join(parts, " ")
}

// dateRangeSpec parses optional YYYY-MM-DD bounds into a StartedBetween
// specification. The To bound is inclusive of the whole day.
func dateRangeSpec(from, to string) (*specification.StartedBetween, error) {
	if from == "" && to == "" {
		return nil, nil
	}

	spec := specification.StartedBetween{}
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, serverutils.NewApiError(http.StatusBadRequest, "invalid from date")
		}
		spec.From = t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, serverutils.NewApiError(http.StatusBadRequest, "invalid to date")
		}
		spec.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &spec, nil
}
