package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-app/mnemo/pkg/domain/model"
	"github.com/mnemo-app/mnemo/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// userDoc is the Firestore document representation of model.User
type userDoc struct {
	Name          string    `firestore:"name"`
	Email         string    `firestore:"email"`
	MemorySummary string    `firestore:"memory_summary"`
	WeeklyGoal    string    `firestore:"weekly_goal"`
	LastQuestion  string    `firestore:"last_question"`
	LastAnswer    string    `firestore:"last_answer"`
	CreatedAt     time.Time `firestore:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

func toUserDoc(u *model.User) *userDoc {
	return &userDoc{
		Name:          u.Name,
		Email:         u.Email,
		MemorySummary: u.MemorySummary,
		WeeklyGoal:    u.WeeklyGoal,
		LastQuestion:  u.LastQuestion,
		LastAnswer:    u.LastAnswer,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func fromUserDoc(id types.UserID, d *userDoc) *model.User {
	return &model.User{
		ID:            id,
		Name:          d.Name,
		Email:         d.Email,
		MemorySummary: d.MemorySummary,
		WeeklyGoal:    d.WeeklyGoal,
		LastQuestion:  d.LastQuestion,
		LastAnswer:    d.LastAnswer,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type userRepository struct {
	client *firestore.Client
}

func newUserRepository(client *firestore.Client) *userRepository {
	return &userRepository{client: client}
}

func (r *userRepository) doc(userID types.UserID) *firestore.DocumentRef {
	return r.client.Collection(collectionUsers).Doc(string(userID))
}

func (r *userRepository) Get(ctx context.Context, userID types.UserID) (*model.User, error) {
	doc, err := r.doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("userID", userID))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("userID", userID))
	}

	var d userDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("userID", userID))
	}

	return fromUserDoc(userID, &d), nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if err := user.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID")
	}

	created := *user
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt

	if _, err := r.doc(created.ID).Set(ctx, toUserDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create user", goerr.V("userID", created.ID))
	}

	return &created, nil
}

func (r *userRepository) UpdateMemorySummary(ctx context.Context, userID types.UserID, summary string) error {
	_, err := r.doc(userID).Update(ctx, []firestore.Update{
		{Path: "memory_summary", Value: summary},
		{Path: "updated_at", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "user not found", goerr.V("userID", userID))
		}
		return goerr.Wrap(err, "failed to update memory summary", goerr.V("userID", userID))
	}
	return nil
}

func (r *userRepository) UpdateRecentConversation(ctx context.Context, userID types.UserID, question, answer string) error {
	_, err := r.doc(userID).Update(ctx, []firestore.Update{
		{Path: "last_question", Value: question},
		{Path: "last_answer", Value: answer},
		{Path: "updated_at", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "user not found", goerr.V("userID", userID))
		}
		return goerr.Wrap(err, "failed to update recent conversation", goerr.V("userID", userID))
	}
	return nil
}
