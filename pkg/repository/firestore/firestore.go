package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-app/mnemo/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = goerr.New("record not found")

// Collection names. Memory records live in top-level collections keyed by a
// user_id field so recency windows run on composite indexes (see the
// migrate command).
const (
	collectionUsers      = "users"
	collectionMemories   = "memories"
	collectionEpisodes   = "episodes"
	collectionEmbeddings = "embeddings"
)

type Firestore struct {
	client    *firestore.Client
	user      *userRepository
	longTerm  *longTermRepository
	episode   *episodeRepository
	embedding *embeddingRepository
}

var _ interfaces.Repository = &Firestore{}

func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	return &Firestore{
		client:    client,
		user:      newUserRepository(client),
		longTerm:  newLongTermRepository(client),
		episode:   newEpisodeRepository(client),
		embedding: newEmbeddingRepository(client),
	}, nil
}

func (f *Firestore) User() interfaces.UserRepository {
	return f.user
}

func (f *Firestore) LongTerm() interfaces.LongTermRepository {
	return f.longTerm
}

func (f *Firestore) Episode() interfaces.EpisodeRepository {
	return f.episode
}

func (f *Firestore) Embedding() interfaces.EmbeddingRepository {
	return f.embedding
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
