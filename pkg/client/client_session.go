package client

import (
	"context"
	"errors"

	"github.com/adrianliechti/prism/pkg/aggregator"
	"github.com/adrianliechti/prism/pkg/engine"
	"github.com/adrianliechti/prism/pkg/searcher"
	"github.com/adrianliechti/prism/pkg/session"
	"github.com/adrianliechti/prism/pkg/summarizer"
)

var (
	_ session.Searcher    = (*Searcher)(nil)
	_ summarizer.Provider = (*Summarizer)(nil)
)

// Searcher runs aggregations on a remote server.
type Searcher struct {
	client *Client
}

func (c *Client) Searcher() *Searcher {
	return &Searcher{client: c}
}

func (s *Searcher) Search(ctx context.Context, query string) (*aggregator.Result, error) {
	resp, err := s.client.Searches.New(ctx, SearchRequest{
		Query: query,
	})

	if err != nil {
		return nil, &aggregator.AggregationError{Err: err}
	}

	result := &aggregator.Result{
		Query: resp.Query,

		Results: make([]searcher.Result, 0, len(resp.Results)),
	}

	for _, r := range resp.Results {
		result.Results = append(result.Results, searcher.Result{
			ID: r.ID,

			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Snippet,

			Source: engine.Engine(r.Source),
		})
	}

	for _, e := range resp.Engines {
		result.Engines = append(result.Engines, engine.Engine(e))
	}

	for _, f := range resp.Failures {
		result.Failures = append(result.Failures, &searcher.ProviderError{
			Engine: engine.Engine(f.Engine),
			Err:    errors.New(f.Error),
		})
	}

	return result, nil
}

// Summarizer requests answers from a remote server.
type Summarizer struct {
	client *Client
}

func (c *Client) Summarizer() *Summarizer {
	return &Summarizer{client: c}
}

func (s *Summarizer) Summarize(ctx context.Context, query string, results []searcher.Result) (*summarizer.Summary, error) {
	input := SummaryRequest{
		Query: query,

		Results: make([]SearchResult, 0, len(results)),
	}

	for _, r := range results {
		input.Results = append(input.Results, SearchResult{
			ID: r.ID,

			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Snippet,

			Source: r.Source.String(),
		})
	}

	summary, err := s.client.Summaries.New(ctx, input)

	if err != nil {
		return nil, &summarizer.SummaryError{Err: err}
	}

	return &summarizer.Summary{
		Text: summary.Text,
	}, nil
}
