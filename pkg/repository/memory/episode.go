package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-app/mnemo/pkg/domain/model"
	"github.com/mnemo-app/mnemo/pkg/domain/types"
)

type episodeRepository struct {
	mu       sync.RWMutex
	episodes map[types.UserID][]*model.Episode
}

func newEpisodeRepository() *episodeRepository {
	return &episodeRepository{
		episodes: make(map[types.UserID][]*model.Episode),
	}
}

func copyEpisode(e *model.Episode) *model.Episode {
	copied := *e
	if e.Tags != nil {
		copied.Tags = make([]string, len(e.Tags))
		copy(copied.Tags, e.Tags)
	}
	return &copied
}

func (r *episodeRepository) Create(ctx context.Context, episode *model.Episode) (*model.Episode, error) {
	if err := episode.UserID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID for episode")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyEpisode(episode)
	if created.ID == "" {
		created.ID = types.NewEpisodeID()
	}
	created.CreatedAt = time.Now().UTC()

	r.episodes[created.UserID] = append(r.episodes[created.UserID], created)
	return copyEpisode(created), nil
}

func (r *episodeRepository) ListRecent(ctx context.Context, userID types.UserID, limit int) ([]*model.Episode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket := r.episodes[userID]

	result := make([]*model.Episode, 0, limit)
	for i := len(bucket) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, copyEpisode(bucket[i]))
	}

	return result, nil
}
