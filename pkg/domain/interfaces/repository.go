package interfaces

import (
	"context"

	"github.com/mnemo-app/mnemo/pkg/domain/model"
	"github.com/mnemo-app/mnemo/pkg/domain/types"
)

// Repository defines the interface for data persistence. All query shapes
// are scoped by user ID; callers treat failures as degraded results, not
// fatal errors.
type Repository interface {
	User() UserRepository
	LongTerm() LongTermRepository
	Episode() EpisodeRepository
	Embedding() EmbeddingRepository

	Close() error
}

// UserRepository persists User records
type UserRepository interface {
	// Get retrieves a user by ID
	Get(ctx context.Context, userID types.UserID) (*model.User, error)

	// Create creates a new user record
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// UpdateMemorySummary replaces the user's long-term-memory narrative.
	// Last write wins; concurrent sessions for the same user are not
	// coordinated against each other.
	UpdateMemorySummary(ctx context.Context, userID types.UserID, summary string) error

	// UpdateRecentConversation replaces the cached last question/answer pair
	UpdateRecentConversation(ctx context.Context, userID types.UserID, question, answer string) error
}

// LongTermRepository persists distilled insight entries
type LongTermRepository interface {
	// Create inserts one long-term memory entry
	Create(ctx context.Context, entry *model.LongTermMemory) (*model.LongTermMemory, error)

	// ListRecent retrieves up to limit entries, most recent first
	ListRecent(ctx context.Context, userID types.UserID, limit int) ([]*model.LongTermMemory, error)
}

// EpisodeRepository persists episodic memory entries
type EpisodeRepository interface {
	// Create inserts one episode and returns it with its assigned ID.
	// Insertion and identity assignment are a single round trip; on error
	// the episode must be treated as not created.
	Create(ctx context.Context, episode *model.Episode) (*model.Episode, error)

	// ListRecent retrieves up to limit episodes, most recent first
	ListRecent(ctx context.Context, userID types.UserID, limit int) ([]*model.Episode, error)
}

// EmbeddingRepository persists embedding records
type EmbeddingRepository interface {
	// BatchCreate inserts zero or more embedding records in one call.
	// An empty batch is a no-op.
	BatchCreate(ctx context.Context, records []*model.MemoryEmbedding) error

	// ListRecent retrieves up to limit embedding records, most recent first
	ListRecent(ctx context.Context, userID types.UserID, limit int) ([]*model.MemoryEmbedding, error)
}
