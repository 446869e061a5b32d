package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// EmbeddingCache keeps recently computed conversation-level embeddings so
// repeated searches do not re-vectorize the same representative text.
// Entries expire on their own; ending or mutating a conversation should
// still Invalidate explicitly.
type EmbeddingCache struct {
	cache *cache.Cache
}

func NewEmbeddingCache() *EmbeddingCache {
	// 10 minute default expiration, purge sweep every 5 minutes
	c := cache.New(10*time.Minute, 5*time.Minute)
	return &EmbeddingCache{
		cache: c,
	}
}

func (r *EmbeddingCache) Save(conversationId uuid.UUID, vector []float32) {
	r.cache.Set(conversationId.String(), vector, cache.DefaultExpiration)
}

func (r *EmbeddingCache) Get(conversationId uuid.UUID) ([]float32, bool) {
	if x, found := r.cache.Get(conversationId.String()); found {
		return x.([]float32), true
	}
	return nil, false
}

func (r *EmbeddingCache) Invalidate(conversationId uuid.UUID) {
	r.cache.Delete(conversationId.String())
}
