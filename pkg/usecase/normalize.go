package usecase

import (
	"regexp"
	"strings"
)

var (
	fencedCodeRe = regexp.MustCompile("(?s)```.*?```")
	boldRe       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe     = regexp.MustCompile(`\*(.+?)\*`)
	bulletRe     = regexp.MustCompile(`(?m)^- `)
	trailingWSRe = regexp.MustCompile(`[ \t]+\n`)
)

// NormalizeReply deterministically cleans the main model's markdown habits
// for plain-text delivery: fenced code blocks are dropped, bold/italic
// markers stripped, leading hyphen bullets rewritten as mid-dot bullets and
// trailing whitespace trimmed.
func NormalizeReply(s string) string {
	s = fencedCodeRe.ReplaceAllString(s, "")
	s = boldRe.ReplaceAllString(s, "$1")
	s = italicRe.ReplaceAllString(s, "$1")
	s = bulletRe.ReplaceAllString(s, "・")
	s = trailingWSRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
