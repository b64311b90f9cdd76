package text

import (
	"regexp"
	"strings"
)

var (
	paragraphPattern = regexp.MustCompile(`\n\s*\n\s*`)
	linePattern      = regexp.MustCompile(`\n\s*`)
)

// Normalize collapses whitespace while keeping single and paragraph line breaks.
func Normalize(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\a", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	// \a marks line breaks while spaces are collapsed
	text = paragraphPattern.ReplaceAllString(text, "\a\a")
	text = linePattern.ReplaceAllString(text, "\a")

	text = strings.Join(strings.Fields(text), " ")
	text = strings.ReplaceAll(text, "\a", "\n")

	return strings.TrimSpace(text)
}

// Slug lowercases text and joins its words with hyphens.
func Slug(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), "-")
}

// Truncate shortens text to at most n runes, appending an ellipsis when cut.
func Truncate(text string, n int) string {
	runes := []rune(text)

	if n <= 0 || len(runes) <= n {
		return text
	}

	return strings.TrimSpace(string(runes[:n])) + "…"
}
