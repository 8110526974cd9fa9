package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mnemo-app/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-app/mnemo/pkg/domain/model"
	"github.com/mnemo-app/mnemo/pkg/domain/types"
	"github.com/mnemo-app/mnemo/pkg/repository/firestore"
	"github.com/mnemo-app/mnemo/pkg/repository/memory"
)

func newUserID() types.UserID {
	return types.UserID(fmt.Sprintf("user-%s", types.NewMemoryID()))
}

func runRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("User Create and Get round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newUserID()

		created, err := repo.User().Create(ctx, &model.User{
			ID:    userID,
			Name:  "Haruka",
			Email: "haruka@example.com",
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, created.CreatedAt.IsZero()).False()

		got, err := repo.User().Get(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(userID)
		gt.Value(t, got.Name).Equal("Haruka")
		gt.Value(t, got.MemorySummary).Equal("")
	})

	t.Run("User Get returns not found for unknown ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.User().Get(ctx, newUserID())
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)).True()
	})

	t.Run("UpdateMemorySummary replaces the narrative", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newUserID()

		_, err := repo.User().Create(ctx, &model.User{ID: userID, Name: "Haruka"})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.User().UpdateMemorySummary(ctx, userID, "- values quiet mornings"))
		gt.NoError(t, repo.User().UpdateMemorySummary(ctx, userID, "- values quiet mornings\n- worries about deadlines"))

		got, err := repo.User().Get(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.MemorySummary).Equal("- values quiet mornings\n- worries about deadlines")
	})

	t.Run("UpdateRecentConversation caches the latest pair", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newUserID()

		_, err := repo.User().Create(ctx, &model.User{ID: userID, Name: "Haruka"})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.User().UpdateRecentConversation(ctx, userID, "How do I start running?", "Start with short distances."))

		got, err := repo.User().Get(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.LastQuestion).Equal("How do I start running?")
		gt.Value(t, got.LastAnswer).Equal("Start with short distances.")
	})

	t.Run("LongTerm Create assigns ID and timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newUserID()

		created, err := repo.LongTerm().Create(ctx, &model.LongTermMemory{
			UserID:  userID,
			Content: "Prefers planning the week on Sunday evenings",
		})
		gt.NoError(t, err).Required()
		gt.String(t, string(created.ID)).NotEqual("")
		gt.Bool(t, created.CreatedAt.IsZero()).False()
	})

	t.Run("LongTerm ListRecent returns newest first bounded by limit", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newUserID()

		for i := 0; i < 7; i++ {
			_, err := repo.LongTerm().Create(ctx, &model.LongTermMemory{
				UserID:  userID,
				Content: fmt.Sprintf("insight %d", i),
			})
			gt.NoError(t, err).Required()
		}

		entries, err := repo.LongTerm().ListRecent(ctx, userID, 5)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(5)
		gt.Value(t, entries[0].Content).Equal("insight 6")
		gt.Value(t, entries[4].Content).Equal("insight 2")
	})

	t.Run("LongTerm entries never leak across users", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		owner := newUserID()
		other := newUserID()

		_, err := repo.LongTerm().Create(ctx, &model.LongTermMemory{UserID: owner, Content: "private insight"})
		gt.NoError(t, err).Required()

		entries, err := repo.LongTerm().ListRecent(ctx, other, 5)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(0)
	})

	t.Run("Episode Create returns assigned identity", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newUserID()

		created, err := repo.Episode().Create(ctx, &model.Episode{
			UserID:  userID,
			Summary: "Started training for a half marathon.",
			Source:  "User: I signed up for a half marathon.\nAssistant: That is a great goal.",
			Tags:    []string{"running", "goal"},
		})
		gt.NoError(t, err).Required()
		gt.String(t, string(created.ID)).NotEqual("")
		gt.Array(t, created.Tags).Length(2)
	})

	t.Run("Episode with empty tag list is stored as-is", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newUserID()

		created, err := repo.Episode().Create(ctx, &model.Episode{
			UserID:  userID,
			Summary: "Talked about the weather.",
			Source:  "User: Nice weather today.\nAssistant: It really is.",
			Tags:    []string{},
		})
		gt.NoError(t, err).Required()

		episodes, err := repo.Episode().ListRecent(ctx, userID, 1)
		gt.NoError(t, err).Required()
		gt.Array(t, episodes).Length(1)
		gt.Array(t, episodes[0].Tags).Length(0)
		gt.Value(t, episodes[0].ID).Equal(created.ID)
	})

	t.Run("Embedding BatchCreate with empty batch is a no-op", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Embedding().BatchCreate(ctx, nil))
		gt.NoError(t, repo.Embedding().BatchCreate(ctx, []*model.MemoryEmbedding{}))
	})

	t.Run("Embedding BatchCreate stores both record kinds", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newUserID()
		episodeID := types.NewEpisodeID()

		err := repo.Embedding().BatchCreate(ctx, []*model.MemoryEmbedding{
			{
				UserID:  userID,
				Source:  types.EmbeddingSourceTurn,
				Content: "I signed up for a half marathon.",
				Vector:  []float32{0.1, 0.2, 0.3},
			},
			{
				UserID:    userID,
				Source:    types.EmbeddingSourceEpisode,
				EpisodeID: episodeID,
				Content:   "Started training for a half marathon.",
				Vector:    []float32{0.4, 0.5, 0.6},
			},
		})
		gt.NoError(t, err).Required()

		records, err := repo.Embedding().ListRecent(ctx, userID, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(2)

		bySource := map[types.EmbeddingSource]*model.MemoryEmbedding{}
		for _, rec := range records {
			bySource[rec.Source] = rec
		}
		gt.Value(t, bySource[types.EmbeddingSourceTurn].EpisodeID).Equal(types.EpisodeID(""))
		gt.Value(t, bySource[types.EmbeddingSourceEpisode].EpisodeID).Equal(episodeID)
		gt.Array(t, bySource[types.EmbeddingSourceTurn].Vector).Length(3)
	})

	t.Run("Embedding ListRecent bounds the window", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newUserID()

		batch := make([]*model.MemoryEmbedding, 0, 8)
		for i := 0; i < 8; i++ {
			batch = append(batch, &model.MemoryEmbedding{
				UserID:  userID,
				Source:  types.EmbeddingSourceTurn,
				Content: fmt.Sprintf("turn %d", i),
				Vector:  []float32{float32(i)},
			})
		}
		gt.NoError(t, repo.Embedding().BatchCreate(ctx, batch))

		records, err := repo.Embedding().ListRecent(ctx, userID, 3)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(3)
	})

	t.Run("Embedding rejects unknown source kind", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Embedding().BatchCreate(ctx, []*model.MemoryEmbedding{
			{
				UserID: newUserID(),
				Source: types.EmbeddingSource("unknown"),
				Vector: []float32{0.1},
			},
		})
		gt.Value(t, err).NotNil()
	})

	t.Run("Full dimension vector is preserved", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newUserID()

		vec := make([]float32, model.EmbeddingDimension)
		for i := range vec {
			vec[i] = float32(i) / float32(model.EmbeddingDimension)
		}

		err := repo.Embedding().BatchCreate(ctx, []*model.MemoryEmbedding{
			{
				UserID:  userID,
				Source:  types.EmbeddingSourceTurn,
				Content: "full dimension",
				Vector:  vec,
			},
		})
		gt.NoError(t, err).Required()

		records, err := repo.Embedding().ListRecent(ctx, userID, 1)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(1)
		gt.Array(t, records[0].Vector).Length(model.EmbeddingDimension)
		expectedLast := float32(model.EmbeddingDimension-1) / float32(model.EmbeddingDimension)
		gt.Value(t, records[0].Vector[model.EmbeddingDimension-1]).Equal(expectedLast)
	})
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID)
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func TestMemoryRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreRepository(t *testing.T) {
	runRepositoryTest(t, newFirestoreRepository)
}
