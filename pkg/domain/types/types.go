package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// UserID identifies the owner of all memory records. Every query in the
// repository layer is scoped by UserID; there is no cross-user access path.
type UserID string

func (id UserID) String() string {
	return string(id)
}

// Validate checks if the UserID is non-empty
func (id UserID) Validate() error {
	if id == "" {
		return goerr.New("user ID is empty")
	}
	return nil
}

// MemoryID is a UUID-based identifier for a long-term memory entry
type MemoryID string

// NewMemoryID generates a new UUID v4 MemoryID
func NewMemoryID() MemoryID {
	return MemoryID(uuid.New().String())
}

// EpisodeID is a UUID-based identifier for an episodic memory entry.
// It is assigned at insert time and is required before any embedding
// referencing the episode can be stored.
type EpisodeID string

// NewEpisodeID generates a new UUID v4 EpisodeID
func NewEpisodeID() EpisodeID {
	return EpisodeID(uuid.New().String())
}

// EmbeddingID is a UUID-based identifier for a stored embedding record
type EmbeddingID string

// NewEmbeddingID generates a new UUID v4 EmbeddingID
func NewEmbeddingID() EmbeddingID {
	return EmbeddingID(uuid.New().String())
}

// EmbeddingSource describes what kind of text an embedding was derived from
type EmbeddingSource string

const (
	// EmbeddingSourceTurn is a raw user message from one conversational turn
	EmbeddingSourceTurn EmbeddingSource = "conversation"

	// EmbeddingSourceEpisode is the summary of an episodic memory entry.
	// Records of this kind carry the EpisodeID of their source entry.
	EmbeddingSourceEpisode EmbeddingSource = "episode"
)

// Validate checks if the EmbeddingSource is a known kind
func (s EmbeddingSource) Validate() error {
	switch s {
	case EmbeddingSourceTurn, EmbeddingSourceEpisode:
		return nil
	default:
		return goerr.New("invalid embedding source", goerr.V("source", string(s)))
	}
}
