package similarity

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{
			name: "identical vectors",
			a:    []float32{1, 2, 3},
			b:    []float32{1, 2, 3},
			want: 1.0,
		},
		{
			name: "opposite vectors",
			a:    []float32{1, 0},
			b:    []float32{-1, 0},
			want: -1.0,
		},
		{
			name: "orthogonal vectors",
			a:    []float32{1, 0},
			b:    []float32{0, 1},
			want: 0.0,
		},
		{
			name: "zero vector",
			a:    []float32{1, 2, 3},
			b:    []float32{0, 0, 0},
			want: 0.0,
		},
		{
			name: "nil vector",
			a:    []float32{1, 2, 3},
			b:    nil,
			want: 0.0,
		},
		{
			name: "mismatched dimensions",
			a:    []float32{1, 2},
			b:    []float32{1, 2, 3},
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSymmetry(t *testing.T) {
	a := []float32{0.3, -0.7, 0.12, 4.2}
	b := []float32{1.1, 0.02, -2.5, 0.9}

	if Cosine(a, b) != Cosine(b, a) {
		t.Errorf("Cosine is not symmetric: %v != %v", Cosine(a, b), Cosine(b, a))
	}
}

func TestCosineRange(t *testing.T) {
	vectors := [][]float32{
		{1, 2, 3},
		{-5, 0.1, 2},
		{0.001, -0.002, 0.003},
		{100, -200, 300},
	}

	for _, a := range vectors {
		for _, b := range vectors {
			got := Cosine(a, b)
			if got < -1.0-1e-9 || got > 1.0+1e-9 {
				t.Errorf("Cosine(%v, %v) = %v, outside [-1, 1]", a, b, got)
			}
		}
	}
}

func TestRankDescending(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		{ID: uuid.New(), Vector: []float32{0, 1}},  // orthogonal, 0.0
		{ID: uuid.New(), Vector: []float32{1, 0}},  // identical, 1.0
		{ID: uuid.New(), Vector: []float32{1, 1}},  // ~0.707
		{ID: uuid.New(), Vector: []float32{-1, 0}}, // opposite, -1.0
	}

	ranked := Rank(query, candidates)

	if len(ranked) != len(candidates) {
		t.Fatalf("Rank returned %d results, want %d", len(ranked), len(candidates))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("scores not descending at position %d: %v > %v", i, ranked[i].Score, ranked[i-1].Score)
		}
	}
	if ranked[0].ID != candidates[1].ID {
		t.Errorf("best match should be the identical vector")
	}
}

func TestRankStableTieBreak(t *testing.T) {
	query := []float32{1, 0}

	// Both absent: both score 0.0, input order must be preserved.
	first := uuid.New()
	second := uuid.New()
	candidates := []Candidate{
		{ID: first, Vector: nil},
		{ID: second, Vector: nil},
	}

	ranked := Rank(query, candidates)

	if ranked[0].ID != first || ranked[1].ID != second {
		t.Errorf("tie break did not preserve input order: got %v, %v", ranked[0].ID, ranked[1].ID)
	}
}

func TestRankEmptyCandidates(t *testing.T) {
	ranked := Rank([]float32{1, 0}, nil)
	if len(ranked) != 0 {
		t.Errorf("expected empty result, got %d entries", len(ranked))
	}
}
