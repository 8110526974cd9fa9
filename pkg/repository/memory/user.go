package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-app/mnemo/pkg/domain/model"
	"github.com/mnemo-app/mnemo/pkg/domain/types"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[types.UserID]*model.User
}

func newUserRepository() *userRepository {
	return &userRepository{
		users: make(map[types.UserID]*model.User),
	}
}

func copyUser(u *model.User) *model.User {
	copied := *u
	return &copied
}

func (r *userRepository) Get(ctx context.Context, userID types.UserID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[userID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("userID", userID))
	}

	return copyUser(user), nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if err := user.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyUser(user)
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt

	r.users[created.ID] = created
	return copyUser(created), nil
}

func (r *userRepository) UpdateMemorySummary(ctx context.Context, userID types.UserID, summary string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[userID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "user not found", goerr.V("userID", userID))
	}

	user.MemorySummary = summary
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *userRepository) UpdateRecentConversation(ctx context.Context, userID types.UserID, question, answer string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[userID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "user not found", goerr.V("userID", userID))
	}

	user.LastQuestion = question
	user.LastAnswer = answer
	user.UpdatedAt = time.Now().UTC()
	return nil
}
