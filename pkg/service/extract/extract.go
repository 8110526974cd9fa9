package extract

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/mnemo-app/mnemo/pkg/utils/logging"
)

// minReplyLength guards against consolidating degenerate exchanges: a reply
// shorter than this is not worth distilling.
const minReplyLength = 40

// Generator is the slice of the LLM client this service needs. Extraction
// runs on the cheaper/faster generation path.
type Generator interface {
	Available() bool
	GenerateLite(ctx context.Context, systemPrompt, prompt string) (string, error)
}

// Episode is a structured event derived from one exchange
type Episode struct {
	Summary string
	Tags    []string
}

// Service derives long-term insights and episodic events from a completed
// exchange. Every method is best-effort: failure means "nothing to record",
// never an error.
type Service struct {
	llm Generator
}

func New(llm Generator) *Service {
	return &Service{llm: llm}
}

// ready checks the shared preconditions for attempting extraction
func (s *Service) ready(userMessage, aiMessage string) bool {
	if s.llm == nil || !s.llm.Available() {
		return false
	}
	if userMessage == "" {
		return false
	}
	return utf8.RuneCountInString(aiMessage) >= minReplyLength
}

const insightSystemPrompt = `You observe one exchange between a user and their assistant and distill what it reveals about the user.
Write exactly one short bullet, in neutral third person, about the user's values, worries, hopes, or thinking patterns.
Output the single bullet only. No preamble, no extra lines.`

// Insight derives a single distilled fact about the user from one exchange.
// Returns an empty string when extraction is unavailable or fails.
func (s *Service) Insight(ctx context.Context, userName, priorSummary, userMessage, aiMessage string) string {
	if !s.ready(userMessage, aiMessage) {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("User name: " + userName + "\n\n")
	if priorSummary != "" {
		sb.WriteString("What is already known about the user:\n")
		sb.WriteString(priorSummary + "\n\n")
	}
	sb.WriteString("User message:\n" + userMessage + "\n\n")
	sb.WriteString("Assistant reply:\n" + aiMessage + "\n")

	reply, err := s.llm.GenerateLite(ctx, insightSystemPrompt, sb.String())
	if err != nil {
		logging.From(ctx).Warn("insight extraction failed", "error", err.Error())
		return ""
	}

	return stripBullet(reply)
}

const episodeSystemPrompt = `You observe one exchange between a user and their assistant and record it as a life event.
Reply in exactly this format, two lines:
Summary: <what happened, at most 2 sentences>
Tags: <comma-separated keywords, may be empty>`

// ExtractEpisode derives a structured event from one exchange. Returns nil
// when extraction is unavailable, fails, or the reply is malformed.
func (s *Service) ExtractEpisode(ctx context.Context, userName, userMessage, aiMessage string) *Episode {
	if !s.ready(userMessage, aiMessage) {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("User name: " + userName + "\n\n")
	sb.WriteString("User message:\n" + userMessage + "\n\n")
	sb.WriteString("Assistant reply:\n" + aiMessage + "\n")

	reply, err := s.llm.GenerateLite(ctx, episodeSystemPrompt, sb.String())
	if err != nil {
		logging.From(ctx).Warn("episode extraction failed", "error", err.Error())
		return nil
	}

	return parseEpisode(reply)
}

// stripBullet removes a leading bullet marker from a single-line reply
func stripBullet(s string) string {
	s = strings.TrimSpace(s)
	for _, marker := range []string{"- ", "* ", "• ", "・"} {
		if strings.HasPrefix(s, marker) {
			return strings.TrimSpace(strings.TrimPrefix(s, marker))
		}
	}
	return s
}

const (
	summaryLabel = "Summary:"
	tagsLabel    = "Tags:"
)

// parseEpisode parses the fixed two-label reply format. A reply whose
// summary label is missing or empty yields nil; a missing or empty tag line
// yields an empty tag list, which is a valid episode.
func parseEpisode(raw string) *Episode {
	var summary string
	var tags []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, summaryLabel):
			summary = strings.TrimSpace(strings.TrimPrefix(line, summaryLabel))
		case strings.HasPrefix(line, tagsLabel):
			tags = splitTags(strings.TrimPrefix(line, tagsLabel))
		}
	}

	if summary == "" {
		return nil
	}

	if tags == nil {
		tags = []string{}
	}
	return &Episode{Summary: summary, Tags: tags}
}

// splitTags splits a comma-separated tag line, trimming each tag and
// dropping empty ones
func splitTags(line string) []string {
	tags := make([]string, 0)
	for _, tag := range strings.Split(line, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
