package llm_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mnemo-app/mnemo/pkg/service/llm"
)

func TestParsePolicy(t *testing.T) {
	gt.Value(t, llm.ParsePolicy("primary")).Equal(llm.PolicyPrimary)
	gt.Value(t, llm.ParsePolicy("secondary")).Equal(llm.PolicySecondary)
	gt.Value(t, llm.ParsePolicy("fallback")).Equal(llm.PolicyFallback)

	// Provider names are accepted as aliases.
	gt.Value(t, llm.ParsePolicy("gemini")).Equal(llm.PolicyPrimary)
	gt.Value(t, llm.ParsePolicy("Claude")).Equal(llm.PolicySecondary)

	// Unknown selectors never block a reply.
	gt.Value(t, llm.ParsePolicy("")).Equal(llm.PolicyFallback)
	gt.Value(t, llm.ParsePolicy("nonsense")).Equal(llm.PolicyFallback)
}

func TestNewValidation(t *testing.T) {
	t.Run("no provider at all is rejected", func(t *testing.T) {
		_, err := llm.New(nil, nil, llm.PolicyFallback)
		gt.Error(t, err)
	})

	t.Run("policy requiring a missing provider is rejected", func(t *testing.T) {
		_, err := llm.New(nil, nil, llm.PolicyPrimary)
		gt.Error(t, err)

		_, err = llm.New(nil, nil, llm.PolicySecondary)
		gt.Error(t, err)
	})

	t.Run("unknown policy is rejected", func(t *testing.T) {
		_, err := llm.New(nil, nil, llm.Policy("weird"))
		gt.Error(t, err)
	})
}

func TestAvailable(t *testing.T) {
	var c *llm.Client
	gt.Bool(t, c.Available()).False()
}
