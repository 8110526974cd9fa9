package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-app/mnemo/pkg/domain/model"
	"github.com/mnemo-app/mnemo/pkg/domain/types"
	"google.golang.org/api/iterator"
)

// episodeDoc is the Firestore document representation of model.Episode
type episodeDoc struct {
	UserID    string    `firestore:"user_id"`
	Summary   string    `firestore:"summary"`
	Source    string    `firestore:"source"`
	Tags      []string  `firestore:"tags"`
	CreatedAt time.Time `firestore:"created_at"`
}

type episodeRepository struct {
	client *firestore.Client
}

func newEpisodeRepository(client *firestore.Client) *episodeRepository {
	return &episodeRepository{client: client}
}

// Create inserts the episode in one round trip. The ID is assigned before
// the write so a failed write leaves no usable identity behind.
func (r *episodeRepository) Create(ctx context.Context, episode *model.Episode) (*model.Episode, error) {
	if err := episode.UserID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID for episode")
	}

	created := *episode
	if created.ID == "" {
		created.ID = types.NewEpisodeID()
	}
	created.CreatedAt = time.Now().UTC()

	doc := &episodeDoc{
		UserID:    string(created.UserID),
		Summary:   created.Summary,
		Source:    created.Source,
		Tags:      created.Tags,
		CreatedAt: created.CreatedAt,
	}

	ref := r.client.Collection(collectionEpisodes).Doc(string(created.ID))
	if _, err := ref.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create episode", goerr.V("userID", created.UserID))
	}

	return &created, nil
}

func (r *episodeRepository) ListRecent(ctx context.Context, userID types.UserID, limit int) ([]*model.Episode, error) {
	iter := r.client.Collection(collectionEpisodes).
		Where("user_id", "==", string(userID)).
		OrderBy("created_at", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	episodes := make([]*model.Episode, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate episodes", goerr.V("userID", userID))
		}

		var d episodeDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal episode")
		}

		episodes = append(episodes, &model.Episode{
			ID:        types.EpisodeID(doc.Ref.ID),
			UserID:    types.UserID(d.UserID),
			Summary:   d.Summary,
			Source:    d.Source,
			Tags:      d.Tags,
			CreatedAt: d.CreatedAt,
		})
	}

	return episodes, nil
}
