package text

import (
	"bytes"
	"html"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	atxHeadingPattern     = regexp.MustCompile(`(?m)^#{1,6}\s+.+$`)
	codeFencePattern      = regexp.MustCompile("(?m)^```|^~~~")
	unorderedListPattern  = regexp.MustCompile(`(?m)^[\s]*[-*+]\s+.+$`)
	orderedListPattern    = regexp.MustCompile(`(?m)^[\s]*\d+\.\s+.+$`)
	linkPattern           = regexp.MustCompile(`!?\[([^\]]+)\]\(([^)]+)\)`)
	emphasisPattern       = regexp.MustCompile(`\*\*[^*\n]+\*\*|__[^_\n]+__`)
	blockquotePattern     = regexp.MustCompile(`(?m)^>\s+.+$`)
	horizontalRulePattern = regexp.MustCompile(`(?m)^[\s]*(-{3,}|\*{3,}|_{3,})[\s]*$`)
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// IsMarkdown reports whether text shows at least one Markdown construct.
// Model answers are short, so a single heading, list, link or bold span counts.
func IsMarkdown(text string) bool {
	patterns := []*regexp.Regexp{
		atxHeadingPattern,
		codeFencePattern,
		unorderedListPattern,
		orderedListPattern,
		linkPattern,
		emphasisPattern,
		blockquotePattern,
		horizontalRulePattern,
	}

	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}

	return false
}

// RenderHTML converts an answer to HTML. Plain text is escaped and kept in a
// single paragraph.
func RenderHTML(text string) (string, error) {
	if !IsMarkdown(text) {
		return "<p>" + html.EscapeString(Normalize(text)) + "</p>", nil
	}

	var buf bytes.Buffer

	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}
