package usecase

import (
	"strings"

	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-app/mnemo/pkg/domain/model"
	"github.com/mnemo-app/mnemo/pkg/domain/types"
	"github.com/mnemo-app/mnemo/pkg/utils/async"
	"github.com/mnemo-app/mnemo/pkg/utils/errutil"
	"github.com/mnemo-app/mnemo/pkg/utils/logging"
)

const (
	// recentInsightWindow bounds the long-term entries included in context
	recentInsightWindow = 5

	// snippetLimit bounds each side of the last-conversation snippet
	snippetLimit = 500
)

const basePersona = `You are a warm, attentive personal assistant. You know the user across many conversations.
Use what you remember about the user naturally; never recite memories back verbatim and never mention that you keep records.
Answer in the user's language, concisely.`

// ChatInput is the boundary contract of the orchestrator: a user identity,
// a display name, an ordered list of role-tagged messages and an optional
// mode selector.
type ChatInput struct {
	UserID   types.UserID
	UserName string
	Email    string
	Messages []model.ChatMessage
	Mode     string
}

// Chat assembles personal context, invokes the main LLM, normalizes its
// output, persists the latest exchange and triggers consolidation without
// waiting on it. The main-model failure is the only error surfaced.
func (uc *UseCases) Chat(ctx context.Context, input ChatInput) (string, error) {
	question := model.LatestUserMessage(input.Messages)
	if question == "" {
		return "", goerr.New("conversation contains no user message")
	}

	user := uc.loadUser(ctx, input)

	systemPrompt := basePersona
	if contextBlock := uc.buildContextBlock(ctx, user, question); contextBlock != "" {
		systemPrompt += "\n\n" + contextBlock
	}

	llmClient := uc.llm.WithPolicy(input.Mode)
	reply, err := llmClient.Generate(ctx, systemPrompt, formatTranscript(input.Messages))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate reply", goerr.V("userID", input.UserID))
	}

	reply = NormalizeReply(reply)

	if input.UserID != "" {
		if err := uc.repo.User().UpdateRecentConversation(ctx, input.UserID, question, reply); err != nil {
			errutil.Handle(ctx, err, "failed to cache recent conversation")
		}
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		return uc.Consolidate(ctx, ConsolidateInput{
			UserID:       input.UserID,
			UserName:     input.UserName,
			PriorSummary: user.MemorySummary,
			UserMessage:  question,
			AIMessage:    reply,
		})
	})

	return reply, nil
}

// loadUser fetches the user record, creating it on first contact. Store
// failures degrade to an empty record; they never block the reply.
func (uc *UseCases) loadUser(ctx context.Context, input ChatInput) *model.User {
	fallback := &model.User{
		ID:    input.UserID,
		Name:  input.UserName,
		Email: input.Email,
	}
	if input.UserID == "" {
		return fallback
	}

	user, err := uc.repo.User().Get(ctx, input.UserID)
	if err == nil {
		return user
	}

	created, err := uc.repo.User().Create(ctx, fallback)
	if err != nil {
		logging.From(ctx).Warn("failed to load or create user, continuing without stored context",
			"userID", input.UserID, "error", err.Error())
		return fallback
	}
	return created
}

// buildContextBlock assembles the context sections in fixed order: weekly
// goal, last-conversation snippet, long-term memory, retrieved memories.
// Empty sections are skipped; sections are joined by blank lines.
func (uc *UseCases) buildContextBlock(ctx context.Context, user *model.User, question string) string {
	sections := make([]string, 0, 4)

	if user.WeeklyGoal != "" {
		sections = append(sections, "This week's goal of the user: "+user.WeeklyGoal)
	}

	if user.LastQuestion != "" || user.LastAnswer != "" {
		sections = append(sections, "Previous exchange:\nUser: "+truncate(user.LastQuestion, snippetLimit)+
			"\nAssistant: "+truncate(user.LastAnswer, snippetLimit))
	}

	if memorySection := uc.buildMemorySection(ctx, user); memorySection != "" {
		sections = append(sections, memorySection)
	}

	if retrieved := uc.recall.Retrieve(ctx, user.ID, question); retrieved != "" {
		sections = append(sections, "Memories related to the current topic:\n"+retrieved)
	}

	return strings.Join(sections, "\n\n")
}

// buildMemorySection concatenates the accumulated narrative and the most
// recent distilled insights
func (uc *UseCases) buildMemorySection(ctx context.Context, user *model.User) string {
	parts := make([]string, 0, 2)

	if user.MemorySummary != "" {
		parts = append(parts, user.MemorySummary)
	}

	if user.ID != "" {
		entries, err := uc.repo.LongTerm().ListRecent(ctx, user.ID, recentInsightWindow)
		if err != nil {
			logging.From(ctx).Warn("failed to load long-term memories, skipping",
				"userID", user.ID, "error", err.Error())
		}
		lines := make([]string, 0, len(entries))
		for _, e := range entries {
			lines = append(lines, "- "+e.Content)
		}
		if len(lines) > 0 {
			parts = append(parts, strings.Join(lines, "\n"))
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return "What you remember about the user:\n" + strings.Join(parts, "\n")
}

// formatTranscript renders the ordered messages as a plain transcript for
// the main LLM call
func formatTranscript(messages []model.ChatMessage) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case model.RoleAssistant:
			lines = append(lines, "Assistant: "+msg.Content)
		case model.RoleUser:
			lines = append(lines, "User: "+msg.Content)
		}
	}
	return strings.Join(lines, "\n")
}

// truncate bounds s to limit runes, appending an ellipsis marker when cut
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
