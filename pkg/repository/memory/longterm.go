package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-app/mnemo/pkg/domain/model"
	"github.com/mnemo-app/mnemo/pkg/domain/types"
)

// longTermRepository keeps entries in insertion order per user. Entries are
// insert-only, so slice order is recency order.
type longTermRepository struct {
	mu      sync.RWMutex
	entries map[types.UserID][]*model.LongTermMemory
}

func newLongTermRepository() *longTermRepository {
	return &longTermRepository{
		entries: make(map[types.UserID][]*model.LongTermMemory),
	}
}

func copyLongTerm(e *model.LongTermMemory) *model.LongTermMemory {
	copied := *e
	return &copied
}

func (r *longTermRepository) Create(ctx context.Context, entry *model.LongTermMemory) (*model.LongTermMemory, error) {
	if err := entry.UserID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID for long-term memory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyLongTerm(entry)
	if created.ID == "" {
		created.ID = types.NewMemoryID()
	}
	created.CreatedAt = time.Now().UTC()

	r.entries[created.UserID] = append(r.entries[created.UserID], created)
	return copyLongTerm(created), nil
}

func (r *longTermRepository) ListRecent(ctx context.Context, userID types.UserID, limit int) ([]*model.LongTermMemory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket := r.entries[userID]

	result := make([]*model.LongTermMemory, 0, limit)
	for i := len(bucket) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, copyLongTerm(bucket[i]))
	}

	return result, nil
}
