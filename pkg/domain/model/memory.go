package model

import (
	"time"

	"github.com/mnemo-app/mnemo/pkg/domain/types"
)

// EmbeddingDimension is the fixed dimensionality of embedding vectors
// requested from the provider (768 dimensions)
const EmbeddingDimension = 768

// LongTermMemory is one distilled insight about the user. Entries are
// immutable once created and are queried most-recent-first.
type LongTermMemory struct {
	ID        types.MemoryID
	UserID    types.UserID
	Content   string
	CreatedAt time.Time
}

// Episode is one summarized life event extracted from a single exchange.
// Source keeps the verbatim turn (both sides) the summary was derived from.
// Immutable after creation.
type Episode struct {
	ID        types.EpisodeID
	UserID    types.UserID
	Summary   string
	Source    string
	Tags      []string
	CreatedAt time.Time
}

// MemoryEmbedding is a vector record linking back to its source text.
// EpisodeID is set only when Source is EmbeddingSourceEpisode. Embeddings
// are insert-only; they are never mutated.
type MemoryEmbedding struct {
	ID        types.EmbeddingID
	UserID    types.UserID
	Source    types.EmbeddingSource
	EpisodeID types.EpisodeID
	Content   string
	Vector    []float32
	CreatedAt time.Time
}
