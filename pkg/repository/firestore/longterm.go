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

// longTermDoc is the Firestore document representation of model.LongTermMemory
type longTermDoc struct {
	UserID    string    `firestore:"user_id"`
	Content   string    `firestore:"content"`
	CreatedAt time.Time `firestore:"created_at"`
}

type longTermRepository struct {
	client *firestore.Client
}

func newLongTermRepository(client *firestore.Client) *longTermRepository {
	return &longTermRepository{client: client}
}

func (r *longTermRepository) Create(ctx context.Context, entry *model.LongTermMemory) (*model.LongTermMemory, error) {
	if err := entry.UserID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID for long-term memory")
	}

	created := *entry
	if created.ID == "" {
		created.ID = types.NewMemoryID()
	}
	created.CreatedAt = time.Now().UTC()

	doc := &longTermDoc{
		UserID:    string(created.UserID),
		Content:   created.Content,
		CreatedAt: created.CreatedAt,
	}

	ref := r.client.Collection(collectionMemories).Doc(string(created.ID))
	if _, err := ref.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create long-term memory", goerr.V("userID", created.UserID))
	}

	return &created, nil
}

func (r *longTermRepository) ListRecent(ctx context.Context, userID types.UserID, limit int) ([]*model.LongTermMemory, error) {
	iter := r.client.Collection(collectionMemories).
		Where("user_id", "==", string(userID)).
		OrderBy("created_at", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	entries := make([]*model.LongTermMemory, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate long-term memories", goerr.V("userID", userID))
		}

		var d longTermDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal long-term memory")
		}

		entries = append(entries, &model.LongTermMemory{
			ID:        types.MemoryID(doc.Ref.ID),
			UserID:    types.UserID(d.UserID),
			Content:   d.Content,
			CreatedAt: d.CreatedAt,
		})
	}

	return entries, nil
}
