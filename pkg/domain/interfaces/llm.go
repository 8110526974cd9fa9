package interfaces

import "context"

// LLMClient is the contract the chat and consolidation layers need from the
// text-generation providers. Generate is the only call whose failure is
// surfaced to the end user; Embed and GenerateLite are best-effort.
type LLMClient interface {
	// Available reports whether at least one provider credential is configured
	Available() bool

	// Generate produces the main reply following the configured provider
	// selection policy. Failure of all providers is returned as an error.
	Generate(ctx context.Context, systemPrompt, prompt string) (string, error)

	// GenerateLite produces a completion on the secondary (cheaper/faster)
	// provider, falling back to the primary when no secondary is configured.
	GenerateLite(ctx context.Context, systemPrompt, prompt string) (string, error)

	// Embed converts text into a fixed-dimensionality vector. It returns nil
	// for blank input or on any provider failure; it never returns an error.
	Embed(ctx context.Context, text string) []float32

	// WithPolicy returns a client using the given provider selection policy
	// for Generate. An empty or unknown policy returns the client unchanged.
	WithPolicy(policy string) LLMClient
}
