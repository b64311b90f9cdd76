package api

import (
	"github.com/adrianliechti/prism/pkg/engine"
	"github.com/adrianliechti/prism/pkg/searcher"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type SearchResponse struct {
	Query string `json:"query"`

	Results []SearchResult `json:"results"`

	Engines  []string  `json:"engines"`
	Failures []Failure `json:"failures"`
}

type SearchResult struct {
	ID string `json:"id"`

	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`

	Source string `json:"source"`
}

type Failure struct {
	Engine string `json:"engine"`
	Error  string `json:"error"`
}

type SummarizeRequest struct {
	Query string `json:"query,omitempty"`

	SearchResults []SearchResult `json:"searchResults"`
}

type SummarizeResponse struct {
	Answer     string `json:"answer"`
	AnswerHTML string `json:"answer_html,omitempty"`
}

type Engine struct {
	Name string `json:"name"`

	Color   string `json:"color"`
	Initial string `json:"initial"`

	Configured bool `json:"configured"`
}

func toSearchResult(r searcher.Result) SearchResult {
	return SearchResult{
		ID: r.ID,

		Title:   r.Title,
		URL:     r.URL,
		Snippet: r.Snippet,

		Source: r.Source.String(),
	}
}

func fromSearchResult(r SearchResult) searcher.Result {
	return searcher.Result{
		ID: r.ID,

		Title:   r.Title,
		URL:     r.URL,
		Snippet: r.Snippet,

		Source: engine.Engine(r.Source),
	}
}
