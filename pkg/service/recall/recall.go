package recall

import (
	"context"
	"strings"

	"github.com/mnemo-app/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-app/mnemo/pkg/domain/types"
	"github.com/mnemo-app/mnemo/pkg/utils/logging"
)

// Embedder is the slice of the LLM client this service needs
type Embedder interface {
	Embed(ctx context.Context, text string) []float32
}

// Service answers "what does the system already know that is relevant to
// this message?" by ranking the user's stored embeddings against the query.
type Service struct {
	embedder Embedder
	repo     interfaces.Repository
}

func New(embedder Embedder, repo interfaces.Repository) *Service {
	return &Service{
		embedder: embedder,
		repo:     repo,
	}
}

// Retrieve returns a newline-joined bulleted list of relevant memories, or
// an empty string. Every failure path degrades to "no additional context";
// retrieval never blocks or fails the chat response.
func (s *Service) Retrieve(ctx context.Context, userID types.UserID, query string) string {
	if userID == "" || strings.TrimSpace(query) == "" {
		return ""
	}

	queryVec := s.embedder.Embed(ctx, query)
	if queryVec == nil {
		return ""
	}

	records, err := s.repo.Embedding().ListRecent(ctx, userID, EmbeddingWindow)
	if err != nil {
		logging.From(ctx).Warn("failed to load embedding window, skipping retrieval",
			"userID", userID, "error", err.Error())
		return ""
	}
	if len(records) == 0 {
		return ""
	}

	candidates := make([]Candidate, 0, len(records))
	for _, rec := range records {
		candidates = append(candidates, Candidate{
			Content: rec.Content,
			Vector:  rec.Vector,
		})
	}

	ranked := Rank(queryVec, candidates, SimilarityThreshold, TopK)
	if len(ranked) == 0 {
		return ""
	}

	lines := make([]string, 0, len(ranked))
	for _, r := range ranked {
		lines = append(lines, "- "+r.Content)
	}
	return strings.Join(lines, "\n")
}
