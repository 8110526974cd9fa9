package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/claude"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/mnemo-app/mnemo/pkg/service/llm"
	"github.com/mnemo-app/mnemo/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// LLM holds configuration for the language model providers. Gemini is the
// primary provider (generation and embeddings), Claude is the secondary one
// used for insight and episode extraction.
type LLM struct {
	geminiProjectID string
	geminiLocation  string
	claudeAPIKey    string
	policy          string
}

// Flags returns CLI flags for LLM configuration
func (l *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API",
			Sources:     cli.EnvVars("MNEMO_GEMINI_PROJECT"),
			Destination: &l.geminiProjectID,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Value:       "us-central1",
			Sources:     cli.EnvVars("MNEMO_GEMINI_LOCATION"),
			Destination: &l.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "claude-api-key",
			Usage:       "Anthropic API key for the Claude provider",
			Sources:     cli.EnvVars("MNEMO_CLAUDE_API_KEY"),
			Destination: &l.claudeAPIKey,
		},
		&cli.StringFlag{
			Name:        "llm-policy",
			Usage:       "Provider policy for chat replies (primary, secondary or fallback)",
			Value:       string(llm.PolicyFallback),
			Sources:     cli.EnvVars("MNEMO_LLM_POLICY"),
			Destination: &l.policy,
		},
	}
}

// LogAttrs returns log attributes for the LLM configuration
func (l *LLM) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("gemini_project", l.geminiProjectID),
		slog.String("gemini_location", l.geminiLocation),
		slog.Bool("claude_configured", l.claudeAPIKey != ""),
		slog.String("policy", l.policy),
	}
}

// Configure creates the routing client from the configured providers.
// Returns nil if no provider is configured (chat and memory extraction
// features will be disabled).
func (l *LLM) Configure(ctx context.Context) (*llm.Client, error) {
	var primary, secondary gollem.LLMClient

	if l.geminiProjectID != "" {
		client, err := gemini.New(ctx, l.geminiProjectID, l.geminiLocation)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client")
		}
		primary = client
	}

	if l.claudeAPIKey != "" {
		client, err := claude.New(ctx, l.claudeAPIKey)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Claude client")
		}
		secondary = client
	}

	if primary == nil && secondary == nil {
		logging.Default().Warn("No LLM provider configured, chat features are disabled")
		return nil, nil
	}

	return llm.New(primary, secondary, llm.ParsePolicy(l.policy))
}
