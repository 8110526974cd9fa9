package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mnemo-app/mnemo/pkg/usecase"
)

func TestNormalizeReply(t *testing.T) {
	t.Run("drops fenced code blocks", func(t *testing.T) {
		in := "Sure:\n```go\nfmt.Println(1)\n```\nDone."
		gt.Value(t, usecase.NormalizeReply(in)).Equal("Sure:\n\nDone.")
	})

	t.Run("strips bold and italic markers", func(t *testing.T) {
		gt.Value(t, usecase.NormalizeReply("this is **very** *important*")).
			Equal("this is very important")
	})

	t.Run("rewrites hyphen bullets as mid-dot bullets", func(t *testing.T) {
		in := "- first\n- second"
		gt.Value(t, usecase.NormalizeReply(in)).Equal("・first\n・second")
	})

	t.Run("mid-line hyphens survive", func(t *testing.T) {
		gt.Value(t, usecase.NormalizeReply("a well-known fact - truly")).
			Equal("a well-known fact - truly")
	})

	t.Run("trims trailing whitespace per line and surrounding space", func(t *testing.T) {
		gt.Value(t, usecase.NormalizeReply("  line one  \nline two\t\n")).
			Equal("line one\nline two")
	})

	t.Run("plain text passes through", func(t *testing.T) {
		gt.Value(t, usecase.NormalizeReply("hello there")).Equal("hello there")
	})
}
