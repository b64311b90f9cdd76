package mock

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/adrianliechti/prism/pkg/engine"
	"github.com/adrianliechti/prism/pkg/searcher"
	"github.com/adrianliechti/prism/pkg/text"
)

var _ searcher.Provider = (*Client)(nil)

const DefaultDelay = 2500 * time.Millisecond

// Client simulates a search engine by rendering fixed templates around the
// query after a fixed latency.
type Client struct {
	engine engine.Engine

	delay time.Duration
	err   error
}

func New(e engine.Engine, options ...Option) (*Client, error) {
	if !e.Valid() {
		return nil, errors.New("invalid engine: " + e.String())
	}

	c := &Client{
		engine: e,
		delay:  DefaultDelay,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Search(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
	query = strings.TrimSpace(query)

	if query == "" {
		return nil, searcher.ErrInvalidQuery
	}

	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case <-timer.C:
		}
	}

	if c.err != nil {
		return nil, c.err
	}

	var results []searcher.Result

	for _, t := range templates[c.engine] {
		results = append(results, searcher.Result{
			ID: searcher.NewID(),

			Title:   t.title(query),
			URL:     t.url(query),
			Snippet: t.snippet(query),

			Source: c.engine,
		})
	}

	return searcher.Limit(results, options), nil
}

type template struct {
	title   func(q string) string
	url     func(q string) string
	snippet func(q string) string
}

func escaped(q string) string {
	return url.PathEscape(q)
}

func slugged(q string) string {
	return url.PathEscape(text.Slug(q))
}

var templates = map[engine.Engine][]template{
	engine.Google: {
		{
			title: func(q string) string { return "Google result for \"" + q + "\" - Official Website" },
			url:   func(q string) string { return "https://example.com/google-result-" + escaped(q) },
			snippet: func(q string) string {
				return "This is a comprehensive resource about " + q + " from Google's search index. It provides detailed information about the topic with relevant context and background."
			},
		},
		{
			title: func(q string) string { return q + " - Wikipedia" },
			url: func(q string) string {
				return "https://en.wikipedia.org/wiki/" + url.PathEscape(strings.Join(strings.Fields(q), "_"))
			},
			snippet: func(q string) string {
				return q + " refers to a concept or entity that has been well documented in various sources. This Wikipedia article provides a neutral overview of the subject matter."
			},
		},
		{
			title: func(q string) string { return "Understanding " + q + " - An In-depth Analysis" },
			url:   func(q string) string { return "https://research.org/" + slugged(q) },
			snippet: func(q string) string {
				return "An academic exploration of " + q + ", covering its history, development, and implications in modern contexts. This resource includes citations from peer-reviewed journals."
			},
		},
	},

	engine.Bing: {
		{
			title: func(q string) string { return q + " - Latest News and Updates" },
			url:   func(q string) string { return "https://news.example.com/topics/" + slugged(q) },
			snippet: func(q string) string {
				return "Stay updated with the latest information about " + q + ". Our comprehensive coverage includes recent developments and expert opinions on this trending topic."
			},
		},
		{
			title: func(q string) string { return "Best Resources to Learn About " + q },
			url:   func(q string) string { return "https://learning.example.edu/" + slugged(q) },
			snippet: func(q string) string {
				return "Discover curated educational resources about " + q + " for all skill levels. This collection includes tutorials, guides, and interactive materials to enhance your understanding."
			},
		},
	},

	engine.DuckDuckGo: {
		{
			title: func(q string) string { return q + " Explained Simply - A Beginner's Guide" },
			url:   func(q string) string { return "https://simpleguides.org/" + slugged(q) },
			snippet: func(q string) string {
				return "An easy-to-understand explanation of " + q + " without unnecessary jargon. Perfect for beginners who want to grasp the core concepts quickly and efficiently."
			},
		},
		{
			title: func(q string) string { return "Alternative Perspectives on " + q },
			url:   func(q string) string { return "https://diverse-views.net/topics/" + slugged(q) },
			snippet: func(q string) string {
				return "Explore different viewpoints and alternative approaches to understanding " + q + ". This resource aims to provide a balanced perspective on potentially controversial aspects."
			},
		},
	},

	engine.Brave: {
		{
			title: func(q string) string { return q + " - Independent Index Results" },
			url:   func(q string) string { return "https://search.example.org/brave/" + slugged(q) },
			snippet: func(q string) string {
				return "Results about " + q + " from an independent web index, ranked without tracking or profiling."
			},
		},
		{
			title: func(q string) string { return "Community Discussions About " + q },
			url:   func(q string) string { return "https://forum.example.net/t/" + slugged(q) },
			snippet: func(q string) string {
				return "Practitioners share experiences, questions, and answers about " + q + " in an open community forum."
			},
		},
	},

	engine.YouCom: {
		{
			title: func(q string) string { return q + " - Quick Answer" },
			url:   func(q string) string { return "https://you.example.com/search?q=" + url.QueryEscape(q) },
			snippet: func(q string) string {
				return "A short, direct answer about " + q + " assembled from several trusted sources."
			},
		},
	},
}
