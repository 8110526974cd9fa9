package recall

import (
	"math"
	"sort"
)

const (
	// SimilarityThreshold is the minimum cosine similarity a candidate must
	// exceed (strictly) to survive ranking
	SimilarityThreshold = 0.65

	// TopK bounds the number of ranked results
	TopK = 5

	// EmbeddingWindow bounds the brute-force scan to the most recent stored
	// embeddings. Older records are silently ignored once a user exceeds
	// this count; a known scalability ceiling of the design.
	EmbeddingWindow = 200
)

// Candidate is one stored embedding considered for ranking
type Candidate struct {
	Content string
	Vector  []float32
}

// Scored is one ranked result. Score is cosine similarity in (threshold, 1].
type Scored struct {
	Content string
	Score   float64
}

// CosineSimilarity returns dot(a,b) / (|a|*|b|). It is defined as 0 when
// either vector is empty, the lengths differ, or either norm is zero, so it
// never divides by zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	return dot / denom
}

// Rank scores candidates against the query vector, keeps those strictly
// above threshold, sorts descending by score and truncates to topK. The sort
// is stable, so equally scored candidates keep their original (recency)
// order. Empty or all-below-threshold input yields an empty result.
func Rank(query []float32, candidates []Candidate, threshold float64, topK int) []Scored {
	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		s := CosineSimilarity(query, c.Vector)
		if s > threshold {
			scored = append(scored, Scored{Content: c.Content, Score: s})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK >= 0 && len(scored) > topK {
		scored = scored[:topK]
	}

	return scored
}
