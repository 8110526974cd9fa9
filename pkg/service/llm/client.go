package llm

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/mnemo-app/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-app/mnemo/pkg/domain/model"
	"github.com/mnemo-app/mnemo/pkg/utils/logging"
)

// Policy selects which provider handles the main generation call
type Policy string

const (
	// PolicyPrimary uses the first provider only
	PolicyPrimary Policy = "primary"

	// PolicySecondary uses the second provider only
	PolicySecondary Policy = "secondary"

	// PolicyFallback tries the first provider, then the second on any failure
	PolicyFallback Policy = "fallback"
)

// ParsePolicy converts a string into a Policy. Provider names are accepted
// as aliases; unknown values fall back to PolicyFallback so a bad mode
// selector never blocks a reply.
func ParsePolicy(s string) Policy {
	switch strings.ToLower(s) {
	case string(PolicyPrimary), "gemini":
		return PolicyPrimary
	case string(PolicySecondary), "claude":
		return PolicySecondary
	default:
		return PolicyFallback
	}
}

// Client routes generation and embedding calls across up to two configured
// gollem providers. The primary provider also serves embedding requests.
type Client struct {
	primary   gollem.LLMClient
	secondary gollem.LLMClient
	policy    Policy
}

var _ interfaces.LLMClient = &Client{}

// New creates a Client. At least one provider must be configured; a nil
// provider disables its side of the policy.
func New(primary, secondary gollem.LLMClient, policy Policy) (*Client, error) {
	if primary == nil && secondary == nil {
		return nil, goerr.New("no LLM provider configured")
	}

	switch policy {
	case PolicyPrimary:
		if primary == nil {
			return nil, goerr.New("policy requires the primary provider", goerr.V("policy", policy))
		}
	case PolicySecondary:
		if secondary == nil {
			return nil, goerr.New("policy requires the secondary provider", goerr.V("policy", policy))
		}
	case PolicyFallback:
	default:
		return nil, goerr.New("invalid provider policy", goerr.V("policy", policy))
	}

	return &Client{
		primary:   primary,
		secondary: secondary,
		policy:    policy,
	}, nil
}

// Available reports whether at least one provider is configured
func (c *Client) Available() bool {
	return c != nil && (c.primary != nil || c.secondary != nil)
}

// WithPolicy returns a shallow copy using the given policy for Generate.
// An empty policy string returns the client unchanged.
func (c *Client) WithPolicy(policy string) interfaces.LLMClient {
	if policy == "" {
		return c
	}

	copied := *c
	copied.policy = ParsePolicy(policy)
	return &copied
}

// candidates returns providers in the order the policy tries them
func (c *Client) candidates() []gollem.LLMClient {
	var ordered []gollem.LLMClient
	switch c.policy {
	case PolicyPrimary:
		ordered = []gollem.LLMClient{c.primary}
	case PolicySecondary:
		ordered = []gollem.LLMClient{c.secondary}
	default:
		ordered = []gollem.LLMClient{c.primary, c.secondary}
	}

	result := make([]gollem.LLMClient, 0, len(ordered))
	for _, p := range ordered {
		if p != nil {
			result = append(result, p)
		}
	}
	return result
}

// Generate produces the main reply. Each candidate provider is tried once in
// policy order; only when every candidate fails does the error surface.
func (c *Client) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	return c.generate(ctx, c.candidates(), systemPrompt, prompt)
}

// GenerateLite produces a completion on the secondary (cheaper/faster)
// provider, falling back to the primary when no secondary is configured.
func (c *Client) GenerateLite(ctx context.Context, systemPrompt, prompt string) (string, error) {
	ordered := make([]gollem.LLMClient, 0, 2)
	if c.secondary != nil {
		ordered = append(ordered, c.secondary)
	} else if c.primary != nil {
		ordered = append(ordered, c.primary)
	}
	return c.generate(ctx, ordered, systemPrompt, prompt)
}

func (c *Client) generate(ctx context.Context, providers []gollem.LLMClient, systemPrompt, prompt string) (string, error) {
	if len(providers) == 0 {
		return "", goerr.New("no LLM provider configured")
	}

	logger := logging.From(ctx)

	var lastErr error
	for _, provider := range providers {
		session, err := provider.NewSession(ctx,
			gollem.WithSessionSystemPrompt(systemPrompt),
		)
		if err != nil {
			lastErr = goerr.Wrap(err, "failed to create LLM session")
			logger.Warn("LLM session creation failed, trying next provider", "error", err.Error())
			continue
		}

		resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
		if err != nil {
			lastErr = goerr.Wrap(err, "failed to generate content")
			logger.Warn("LLM generation failed, trying next provider", "error", err.Error())
			continue
		}

		if len(resp.Texts) == 0 || strings.TrimSpace(resp.Texts[0]) == "" {
			lastErr = goerr.New("LLM returned an empty reply")
			continue
		}

		return resp.Texts[0], nil
	}

	return "", goerr.Wrap(lastErr, "all LLM providers failed")
}

// Embed converts text into a fixed-dimensionality vector via the primary
// provider. Blank input and every provider failure yield nil; embedding is a
// best-effort enhancement and never blocks the caller.
func (c *Client) Embed(ctx context.Context, text string) []float32 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	embedder := c.primary
	if embedder == nil {
		embedder = c.secondary
	}
	if embedder == nil {
		return nil
	}

	embeddings, err := embedder.GenerateEmbedding(ctx, model.EmbeddingDimension, []string{text})
	if err != nil {
		logging.From(ctx).Warn("embedding generation failed", "error", err.Error())
		return nil
	}
	if len(embeddings) == 0 || len(embeddings[0]) == 0 {
		logging.From(ctx).Warn("embedding generation returned empty result")
		return nil
	}

	vector := make([]float32, len(embeddings[0]))
	for i, v := range embeddings[0] {
		vector[i] = float32(v)
	}
	return vector
}
