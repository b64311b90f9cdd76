package summarizer

import (
	"encoding/json"
	"strings"

	"github.com/adrianliechti/prism/pkg/searcher"
	"github.com/adrianliechti/prism/pkg/text"
)

const Instructions = `You answer search queries using the search results you are given.
Analyze the results and provide a brief, insightful summary of the key findings across all sources.
Mention where sources agree or disagree. Use Markdown sparingly.
If the results do not contain enough information to answer, say so plainly instead of guessing.`

// maximum snippet length passed to the model per result
const snippetLength = 500

type promptResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
}

// Prompt renders the user message for a query and its corpus. An empty corpus
// yields a prompt asking the model to report insufficient information.
func Prompt(query string, results []searcher.Result) string {
	var b strings.Builder

	query = strings.TrimSpace(query)

	if query != "" {
		b.WriteString("Query: ")
		b.WriteString(query)
		b.WriteString("\n\n")
	}

	if len(results) == 0 {
		b.WriteString("No search results were found. Explain that there is insufficient information to give a grounded answer")

		if query != "" {
			b.WriteString(" and, if possible, suggest how the query could be refined")
		}

		b.WriteString(".")

		return b.String()
	}

	items := make([]promptResult, 0, len(results))

	for _, r := range results {
		items = append(items, promptResult{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: text.Truncate(r.Snippet, snippetLength),
			Source:  r.Source.String(),
		})
	}

	data, _ := json.Marshal(items)

	b.WriteString("Search results: ")
	b.Write(data)

	return b.String()
}

// Answer validates a backend answer.
func Answer(text string) (*Summary, error) {
	text = strings.TrimSpace(text)

	if text == "" {
		return nil, &SummaryError{Err: ErrEmptyAnswer}
	}

	return &Summary{
		Text: text,
	}, nil
}
