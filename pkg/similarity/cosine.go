package similarity

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Candidate pairs an id with its embedding. A nil vector means the
// embedding is absent (backend down, empty text) and scores 0.0.
type Candidate struct {
	ID     uuid.UUID
	Vector []float32
}

// Ranked is a scored candidate. Rank position is implied by slice order.
type Ranked struct {
	ID    uuid.UUID
	Score float64
}

// Cosine computes cosine similarity between two vectors.
// Returns 0.0 if either vector is nil/empty or has zero norm, so callers
// never have to guard against division by zero.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores every candidate against the query vector and returns them
// ordered by descending score. The sort is stable: equal scores keep the
// original candidate order, which keeps results deterministic.
func Rank(query []float32, candidates []Candidate) []Ranked {
	ranked := make([]Ranked, len(candidates))
	for i, c := range candidates {
		ranked[i] = Ranked{
			ID:    c.ID,
			Score: Cosine(query, c.Vector),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}
