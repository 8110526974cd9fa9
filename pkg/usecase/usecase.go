package usecase

import (
	"github.com/mnemo-app/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-app/mnemo/pkg/service/extract"
	"github.com/mnemo-app/mnemo/pkg/service/recall"
)

// UseCases wires the chat orchestrator and the consolidation pipeline to
// their collaborators. Constructed once at process start; no component
// reaches into ambient global state.
type UseCases struct {
	repo    interfaces.Repository
	llm     interfaces.LLMClient
	recall  *recall.Service
	extract *extract.Service
}

type Option func(*UseCases)

// WithRecall overrides the retrieval service (used in tests)
func WithRecall(svc *recall.Service) Option {
	return func(uc *UseCases) {
		uc.recall = svc
	}
}

func New(repo interfaces.Repository, llm interfaces.LLMClient, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:    repo,
		llm:     llm,
		recall:  recall.New(llm, repo),
		extract: extract.New(llm),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
