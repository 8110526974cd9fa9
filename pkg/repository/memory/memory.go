package memory

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-app/mnemo/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

// Memory is an in-memory Repository implementation for development and tests
type Memory struct {
	user      *userRepository
	longTerm  *longTermRepository
	episode   *episodeRepository
	embedding *embeddingRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		user:      newUserRepository(),
		longTerm:  newLongTermRepository(),
		episode:   newEpisodeRepository(),
		embedding: newEmbeddingRepository(),
	}
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) LongTerm() interfaces.LongTermRepository {
	return m.longTerm
}

func (m *Memory) Episode() interfaces.EpisodeRepository {
	return m.episode
}

func (m *Memory) Embedding() interfaces.EmbeddingRepository {
	return m.embedding
}

func (m *Memory) Close() error {
	return nil
}
