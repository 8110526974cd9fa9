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

// embeddingDoc is the Firestore document representation of
// model.MemoryEmbedding. Vector is stored as firestore.Vector32.
type embeddingDoc struct {
	UserID    string             `firestore:"user_id"`
	Source    string             `firestore:"source"`
	EpisodeID string             `firestore:"episode_id"`
	Content   string             `firestore:"content"`
	Vector    firestore.Vector32 `firestore:"vector"`
	CreatedAt time.Time          `firestore:"created_at"`
}

type embeddingRepository struct {
	client *firestore.Client
}

func newEmbeddingRepository(client *firestore.Client) *embeddingRepository {
	return &embeddingRepository{client: client}
}

func (r *embeddingRepository) BatchCreate(ctx context.Context, records []*model.MemoryEmbedding) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now().UTC()
	bw := r.client.BulkWriter(ctx)

	jobs := make([]*firestore.BulkWriterJob, 0, len(records))
	for _, rec := range records {
		if err := rec.UserID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid user ID for embedding")
		}
		if err := rec.Source.Validate(); err != nil {
			return err
		}

		id := rec.ID
		if id == "" {
			id = types.NewEmbeddingID()
		}

		doc := &embeddingDoc{
			UserID:    string(rec.UserID),
			Source:    string(rec.Source),
			EpisodeID: string(rec.EpisodeID),
			Content:   rec.Content,
			Vector:    firestore.Vector32(rec.Vector),
			CreatedAt: now,
		}

		ref := r.client.Collection(collectionEmbeddings).Doc(string(id))
		job, err := bw.Create(ref, doc)
		if err != nil {
			return goerr.Wrap(err, "failed to enqueue embedding write", goerr.V("userID", rec.UserID))
		}
		jobs = append(jobs, job)
	}

	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return goerr.Wrap(err, "failed to write embedding batch")
		}
	}

	return nil
}

func (r *embeddingRepository) ListRecent(ctx context.Context, userID types.UserID, limit int) ([]*model.MemoryEmbedding, error) {
	iter := r.client.Collection(collectionEmbeddings).
		Where("user_id", "==", string(userID)).
		OrderBy("created_at", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	records := make([]*model.MemoryEmbedding, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate embeddings", goerr.V("userID", userID))
		}

		var d embeddingDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal embedding")
		}

		records = append(records, &model.MemoryEmbedding{
			ID:        types.EmbeddingID(doc.Ref.ID),
			UserID:    types.UserID(d.UserID),
			Source:    types.EmbeddingSource(d.Source),
			EpisodeID: types.EpisodeID(d.EpisodeID),
			Content:   d.Content,
			Vector:    []float32(d.Vector),
			CreatedAt: d.CreatedAt,
		})
	}

	return records, nil
}
