package memory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEmbeddingCacheRoundtrip(t *testing.T) {
	c := NewEmbeddingCache()
	id := uuid.New()

	_, found := c.Get(id)
	assert.False(t, found)

	c.Save(id, []float32{0.1, 0.2})
	vec, found := c.Get(id)
	assert.True(t, found)
	assert.Equal(t, []float32{0.1, 0.2}, vec)

	c.Invalidate(id)
	_, found = c.Get(id)
	assert.False(t, found)
}
