package embedding

import (
	"context"

	"ai-chatlog-be/internal/pkg/logger"
)

// Vectorizer wraps an EmbeddingProvider with the fail-soft contract the
// retrieval layer relies on: an unavailable backend or empty text yields
// an absent vector, never an error. Callers treat absence as "skip
// similarity scoring for this item".
type Vectorizer struct {
	provider EmbeddingProvider
	logger   logger.ILogger
}

func NewVectorizer(provider EmbeddingProvider, log logger.ILogger) *Vectorizer {
	return &Vectorizer{
		provider: provider,
		logger:   log,
	}
}

// Embed returns (vector, true) on success and (nil, false) when the text
// is empty or the backend is unavailable.
func (v *Vectorizer) Embed(ctx context.Context, text string) ([]float32, bool) {
	if text == "" {
		return nil, false
	}

	vec, err := v.provider.Generate(ctx, text)
	if err != nil {
		v.logger.Warn("Vectorizer", "Embedding generation failed, treating as absent", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, false
	}
	return vec, true
}

// EmbedBatch embeds each text independently. The result has exactly one
// entry per input, in input order; nil marks an absent embedding. A
// partial failure never shortens the result.
func (v *Vectorizer) EmbedBatch(ctx context.Context, texts []string) [][]float32 {
	results := make([][]float32, len(texts))
	for i, text := range texts {
		if vec, ok := v.Embed(ctx, text); ok {
			results[i] = vec
		}
	}
	return results
}
