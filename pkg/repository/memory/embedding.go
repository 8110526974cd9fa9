package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-app/mnemo/pkg/domain/model"
	"github.com/mnemo-app/mnemo/pkg/domain/types"
)

// embeddingRepository stores insert-only embedding records per user.
// Slice order is insertion order, which doubles as recency order.
type embeddingRepository struct {
	mu      sync.RWMutex
	records map[types.UserID][]*model.MemoryEmbedding
}

func newEmbeddingRepository() *embeddingRepository {
	return &embeddingRepository{
		records: make(map[types.UserID][]*model.MemoryEmbedding),
	}
}

func copyEmbedding(e *model.MemoryEmbedding) *model.MemoryEmbedding {
	copied := *e
	if e.Vector != nil {
		copied.Vector = make([]float32, len(e.Vector))
		copy(copied.Vector, e.Vector)
	}
	return &copied
}

func (r *embeddingRepository) BatchCreate(ctx context.Context, records []*model.MemoryEmbedding) error {
	if len(records) == 0 {
		return nil
	}

	for _, rec := range records {
		if err := rec.UserID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid user ID for embedding")
		}
		if err := rec.Source.Validate(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for _, rec := range records {
		created := copyEmbedding(rec)
		if created.ID == "" {
			created.ID = types.NewEmbeddingID()
		}
		created.CreatedAt = now
		r.records[created.UserID] = append(r.records[created.UserID], created)
	}

	return nil
}

func (r *embeddingRepository) ListRecent(ctx context.Context, userID types.UserID, limit int) ([]*model.MemoryEmbedding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket := r.records[userID]

	result := make([]*model.MemoryEmbedding, 0, limit)
	for i := len(bucket) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, copyEmbedding(bucket[i]))
	}

	return result, nil
}
