package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"ai-chatlog-be/internal/entity"
	"ai-chatlog-be/internal/repository/contract"
	"ai-chatlog-be/internal/repository/specification"
	"ai-chatlog-be/internal/repository/unitofwork"
	"ai-chatlog-be/pkg/llm"

	"github.com/google/uuid"
)

// nopLogger satisfies logger.ILogger without touching the filesystem.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// --- In-memory repositories ---
//
// The fakes interpret the specification types the services actually use;
// anything else is ignored.

type memConversationRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Conversation
}

func newMemConversationRepo() *memConversationRepo {
	return &memConversationRepo{items: make(map[uuid.UUID]*entity.Conversation)}
}

func (r *memConversationRepo) Create(ctx context.Context, c *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.items[c.Id] = &cp
	return nil
}

func (r *memConversationRepo) Update(ctx context.Context, c *entity.Conversation) error {
	return r.Create(ctx, c)
}

func (r *memConversationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *memConversationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	matches, err := r.FindAll(ctx, specs...)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}

func (r *memConversationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var results []*entity.Conversation
	for _, c := range r.items {
		if conversationMatches(c, specs) {
			cp := *c
			results = append(results, &cp)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].StartTime.Before(results[j].StartTime)
	})
	return applyConversationPaging(results, specs), nil
}

func (r *memConversationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	matches, err := r.FindAll(ctx, specs...)
	return int64(len(matches)), err
}

func conversationMatches(c *entity.Conversation, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if c.Id != s.ID {
				return false
			}
		case specification.ByStatus:
			if c.Status != s.Status {
				return false
			}
		case specification.StartedBetween:
			if !s.From.IsZero() && c.StartTime.Before(s.From) {
				return false
			}
			if !s.To.IsZero() && c.StartTime.After(s.To) {
				return false
			}
		}
	}
	return true
}

func applyConversationPaging(results []*entity.Conversation, specs []specification.Specification) []*entity.Conversation {
	for _, spec := range specs {
		if p, ok := spec.(specification.Pagination); ok {
			if p.Offset >= len(results) {
				return nil
			}
			results = results[p.Offset:]
			if p.Limit < len(results) {
				results = results[:p.Limit]
			}
		}
	}
	return results
}

type memMessageRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Message
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{items: make(map[uuid.UUID]*entity.Message)}
}

func (r *memMessageRepo) Create(ctx context.Context, m *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.items[m.Id] = &cp
	return nil
}

func (r *memMessageRepo) Update(ctx context.Context, m *entity.Message) error {
	return r.Create(ctx, m)
}

func (r *memMessageRepo) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok {
		return fmt.Errorf("message %s not found", id)
	}
	m.Embedding = embedding
	return nil
}

func (r *memMessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *memMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	matches, err := r.FindAll(ctx, specs...)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}

func (r *memMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var results []*entity.Message
	for _, m := range r.items {
		if messageMatches(m, specs) {
			cp := *m
			results = append(results, &cp)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Timestamp.Before(results[j].Timestamp)
	})
	for _, spec := range specs {
		if p, ok := spec.(specification.Pagination); ok {
			if p.Offset >= len(results) {
				return nil, nil
			}
			results = results[p.Offset:]
			if p.Limit < len(results) {
				results = results[:p.Limit]
			}
		}
	}
	return results, nil
}

func (r *memMessageRepo) FindRecent(ctx context.Context, conversationId uuid.UUID, limit int) ([]*entity.Message, error) {
	all, err := r.FindAll(ctx, specification.ByConversationID{ConversationID: conversationId})
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (r *memMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	matches, err := r.FindAll(ctx, specs...)
	return int64(len(matches)), err
}

func messageMatches(m *entity.Message, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if m.Id != s.ID {
				return false
			}
		case specification.ByConversationID:
			if m.ConversationId != s.ConversationID {
				return false
			}
		case specification.BySender:
			if m.Sender != s.Sender {
				return false
			}
		}
	}
	return true
}

type memAnalysisRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.ConversationAnalysis // keyed by conversation id
}

func newMemAnalysisRepo() *memAnalysisRepo {
	return &memAnalysisRepo{items: make(map[uuid.UUID]*entity.ConversationAnalysis)}
}

func (r *memAnalysisRepo) Upsert(ctx context.Context, a *entity.ConversationAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.items[a.ConversationId] = &cp
	return nil
}

func (r *memAnalysisRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for convId, a := range r.items {
		if a.Id == id {
			delete(r.items, convId)
		}
	}
	return nil
}

func (r *memAnalysisRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConversationAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.items {
		match := true
		for _, spec := range specs {
			if s, ok := spec.(specification.ByConversationID); ok && a.ConversationId != s.ConversationID {
				match = false
			}
		}
		if match {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memAnalysisRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationAnalysis, error) {
	a, err := r.FindOne(ctx, specs...)
	if err != nil || a == nil {
		return nil, err
	}
	return []*entity.ConversationAnalysis{a}, nil
}

// --- Unit of work ---

type fakeUow struct {
	conversations *memConversationRepo
	messages      *memMessageRepo
	analyses      *memAnalysisRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		conversations: newMemConversationRepo(),
		messages:      newMemMessageRepo(),
		analyses:      newMemAnalysisRepo(),
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) ConversationRepository() contract.ConversationRepository { return u.conversations }
func (u *fakeUow) MessageRepository() contract.MessageRepository           { return u.messages }
func (u *fakeUow) AnalysisRepository() contract.AnalysisRepository         { return u.analyses }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// --- LLM provider ---

// scriptedLLM answers Complete via completeFn and streams the configured
// fragments in order.
type scriptedLLM struct {
	completeFn func(prompt string) (string, error)
	fragments  []string
	streamErr  error

	mu           sync.Mutex
	lastOptions  *llm.Options
	sawDeadlines []bool
}

func (s *scriptedLLM) Complete(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	_, hasDeadline := ctx.Deadline()
	s.mu.Lock()
	s.lastOptions = llm.ApplyOptions(opts...)
	s.sawDeadlines = append(s.sawDeadlines, hasDeadline)
	s.mu.Unlock()
	if s.completeFn == nil {
		return "", fmt.Errorf("no completion scripted")
	}
	return s.completeFn(prompt)
}

// allCompletionsBounded reports whether every Complete call so far ran
// under a context deadline.
func (s *scriptedLLM) allCompletionsBounded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sawDeadlines) == 0 {
		return false
	}
	for _, bounded := range s.sawDeadlines {
		if !bounded {
			return false
		}
	}
	return true
}

func (s *scriptedLLM) Stream(ctx context.Context, prompt string, opts ...llm.Option) (<-chan llm.Chunk, error) {
	s.mu.Lock()
	s.lastOptions = llm.ApplyOptions(opts...)
	s.mu.Unlock()
	if s.streamErr != nil {
		return nil, s.streamErr
	}
	chunks := make(chan llm.Chunk, len(s.fragments)+1)
	for _, fragment := range s.fragments {
		chunks <- llm.Chunk{Text: fragment}
	}
	close(chunks)
	return chunks, nil
}

// --- Event sink ---

type recorderSink struct {
	mu     sync.Mutex
	events []interface{}
}

func (r *recorderSink) Send(event interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recorderSink) all() []interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]interface{}(nil), r.events...)
}

// --- Embedding provider ---

// stubEmbedder returns fixed vectors per text; unknown texts get fallback,
// or an error when failAll is set.
type stubEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
	failAll  bool
}

func (s *stubEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	if s.failAll {
		return nil, fmt.Errorf("embedding backend down")
	}
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	if s.fallback != nil {
		return s.fallback, nil
	}
	return nil, fmt.Errorf("no vector scripted for %q", text)
}
