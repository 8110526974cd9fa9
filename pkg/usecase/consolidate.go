package usecase

import (
	"context"

	"github.com/mnemo-app/mnemo/pkg/domain/model"
	"github.com/mnemo-app/mnemo/pkg/domain/types"
	"github.com/mnemo-app/mnemo/pkg/utils/errutil"
	"golang.org/x/sync/errgroup"
)

// ConsolidateInput carries one completed exchange into the pipeline
type ConsolidateInput struct {
	UserID       types.UserID
	UserName     string
	PriorSummary string
	UserMessage  string
	AIMessage    string
}

// Consolidate turns one completed exchange into durable memory records. It
// runs off the response path via async.Dispatch: no caller waits on it and
// no failure propagates anywhere. Each step degrades independently; the
// pipeline continues with whatever succeeded.
func (uc *UseCases) Consolidate(ctx context.Context, in ConsolidateInput) error {
	uc.consolidateInsight(ctx, in)
	uc.consolidateEpisode(ctx, in)
	return nil
}

// consolidateInsight distills one fact about the user and appends it to the
// narrative summary and the long-term entries
func (uc *UseCases) consolidateInsight(ctx context.Context, in ConsolidateInput) {
	insight := uc.extract.Insight(ctx, in.UserName, in.PriorSummary, in.UserMessage, in.AIMessage)
	if insight == "" || in.UserID == "" {
		return
	}

	summary := insight
	if in.PriorSummary != "" {
		summary = in.PriorSummary + "\n" + insight
	}

	if err := uc.repo.User().UpdateMemorySummary(ctx, in.UserID, summary); err != nil {
		errutil.Handle(ctx, err, "failed to update memory summary")
	}

	if _, err := uc.repo.LongTerm().Create(ctx, &model.LongTermMemory{
		UserID:  in.UserID,
		Content: insight,
	}); err != nil {
		errutil.Handle(ctx, err, "failed to insert long-term memory")
	}
}

// consolidateEpisode records the exchange as a tagged event and stores the
// embeddings that make it retrievable later
func (uc *UseCases) consolidateEpisode(ctx context.Context, in ConsolidateInput) {
	if in.UserID == "" {
		return
	}

	ep := uc.extract.ExtractEpisode(ctx, in.UserName, in.UserMessage, in.AIMessage)
	if ep == nil {
		return
	}

	episode, err := uc.repo.Episode().Create(ctx, &model.Episode{
		UserID:  in.UserID,
		Summary: ep.Summary,
		Source:  "User: " + in.UserMessage + "\nAssistant: " + in.AIMessage,
		Tags:    ep.Tags,
	})
	if err != nil {
		errutil.Handle(ctx, err, "failed to insert episode")
		episode = nil
	}

	// The two embedding calls are independent; run them concurrently and
	// wait for both to settle. Embed never returns an error.
	var turnVec, summaryVec []float32
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		turnVec = uc.llm.Embed(egCtx, in.UserMessage)
		return nil
	})
	eg.Go(func() error {
		summaryVec = uc.llm.Embed(egCtx, ep.Summary)
		return nil
	})
	_ = eg.Wait()

	batch := make([]*model.MemoryEmbedding, 0, 2)
	if len(turnVec) > 0 {
		batch = append(batch, &model.MemoryEmbedding{
			UserID:  in.UserID,
			Source:  types.EmbeddingSourceTurn,
			Content: in.UserMessage,
			Vector:  turnVec,
		})
	}
	if len(summaryVec) > 0 && episode != nil {
		batch = append(batch, &model.MemoryEmbedding{
			UserID:    in.UserID,
			Source:    types.EmbeddingSourceEpisode,
			EpisodeID: episode.ID,
			Content:   ep.Summary,
			Vector:    summaryVec,
		})
	}

	if len(batch) == 0 {
		return
	}
	if err := uc.repo.Embedding().BatchCreate(ctx, batch); err != nil {
		errutil.Handle(ctx, err, "failed to insert embedding batch")
	}
}
