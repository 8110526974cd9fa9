package recall_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mnemo-app/mnemo/pkg/service/recall"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors score 1", func(t *testing.T) {
		v := []float32{0.3, 0.4, 0.5}
		got := recall.CosineSimilarity(v, v)
		gt.Number(t, got).Greater(0.9999)
		gt.Number(t, got).LessOrEqual(1.0000001)
	})

	t.Run("orthogonal vectors score 0", func(t *testing.T) {
		got := recall.CosineSimilarity([]float32{1, 0}, []float32{0, 1})
		gt.Value(t, got).Equal(0.0)
	})

	t.Run("opposite vectors score -1", func(t *testing.T) {
		got := recall.CosineSimilarity([]float32{1, 2}, []float32{-1, -2})
		gt.Number(t, got).Less(-0.9999)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := []float32{0.2, 0.9, 0.1}
		b := []float32{0.7, 0.3, 0.6}
		gt.Value(t, recall.CosineSimilarity(a, b)).Equal(recall.CosineSimilarity(b, a))
	})

	t.Run("degenerate inputs score 0", func(t *testing.T) {
		gt.Value(t, recall.CosineSimilarity(nil, nil)).Equal(0.0)
		gt.Value(t, recall.CosineSimilarity([]float32{1, 2}, nil)).Equal(0.0)
		gt.Value(t, recall.CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3})).Equal(0.0)
		gt.Value(t, recall.CosineSimilarity([]float32{0, 0}, []float32{1, 2})).Equal(0.0)
	})
}

func TestRank(t *testing.T) {
	query := []float32{1, 0}

	t.Run("filters strictly above threshold", func(t *testing.T) {
		candidates := []recall.Candidate{
			{Content: "exact", Vector: []float32{1, 0}},
			{Content: "orthogonal", Vector: []float32{0, 1}},
		}

		ranked := recall.Rank(query, candidates, 0, 5)
		gt.Array(t, ranked).Length(1)
		gt.Value(t, ranked[0].Content).Equal("exact")
	})

	t.Run("score equal to threshold is excluded", func(t *testing.T) {
		candidates := []recall.Candidate{
			{Content: "exact", Vector: []float32{1, 0}},
		}

		ranked := recall.Rank(query, candidates, 1.0, 5)
		gt.Array(t, ranked).Length(0)
	})

	t.Run("sorted descending and truncated to topK", func(t *testing.T) {
		candidates := []recall.Candidate{
			{Content: "far", Vector: []float32{1, 1}},
			{Content: "near", Vector: []float32{1, 0.1}},
			{Content: "exact", Vector: []float32{1, 0}},
		}

		ranked := recall.Rank(query, candidates, 0.5, 2)
		gt.Array(t, ranked).Length(2)
		gt.Value(t, ranked[0].Content).Equal("exact")
		gt.Value(t, ranked[1].Content).Equal("near")
		gt.Number(t, ranked[0].Score).Greater(ranked[1].Score)
	})

	t.Run("equal scores keep input order", func(t *testing.T) {
		candidates := []recall.Candidate{
			{Content: "first", Vector: []float32{2, 0}},
			{Content: "second", Vector: []float32{3, 0}},
		}

		ranked := recall.Rank(query, candidates, 0.5, 5)
		gt.Array(t, ranked).Length(2)
		gt.Value(t, ranked[0].Content).Equal("first")
		gt.Value(t, ranked[1].Content).Equal("second")
	})

	t.Run("empty candidates yield empty result", func(t *testing.T) {
		ranked := recall.Rank(query, nil, 0.5, 5)
		gt.Array(t, ranked).Length(0)
	})

	t.Run("exact match ranks first under any sub-unit threshold", func(t *testing.T) {
		candidates := []recall.Candidate{
			{Content: "close", Vector: []float32{1, 0.05}},
			{Content: "exact", Vector: []float32{2, 0}},
		}

		ranked := recall.Rank(query, candidates, 0.99, 5)
		gt.Array(t, ranked).Length(2).Required()
		gt.Value(t, ranked[0].Content).Equal("exact")
		gt.Number(t, ranked[0].Score).Greater(0.9999)
	})
}
