package serpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/adrianliechti/prism/pkg/engine"
	"github.com/adrianliechti/prism/pkg/searcher"

	g "github.com/serpapi/google-search-results-golang"
)

var _ searcher.Provider = &Client{}

type searchFunc func(parameter map[string]string, token string) (map[string]any, error)

// Client queries Google or Bing through SerpApi.
type Client struct {
	token  string
	engine engine.Engine

	location string
	language string

	search searchFunc
}

func New(e engine.Engine, token string, options ...Option) (*Client, error) {
	c := &Client{
		token:  token,
		engine: e,

		language: "en",
	}

	for _, option := range options {
		option(c)
	}

	if c.token == "" {
		return nil, errors.New("invalid token")
	}

	switch c.engine {
	case engine.Google:
		c.search = func(parameter map[string]string, token string) (map[string]any, error) {
			search := g.NewGoogleSearch(parameter, token)
			return search.GetJSON()
		}

	case engine.Bing:
		c.search = func(parameter map[string]string, token string) (map[string]any, error) {
			search := g.NewBingSearch(parameter, token)
			return search.GetJSON()
		}

	default:
		return nil, errors.New("unsupported serpapi engine: " + c.engine.String())
	}

	return c, nil
}

func (c *Client) Search(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
	parameter := c.parameters(query, options)

	type response struct {
		data map[string]any
		err  error
	}

	// the SerpApi client has no context support
	ch := make(chan response, 1)

	go func() {
		data, err := c.search(parameter, c.token)
		ch <- response{data, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()

	case resp := <-ch:
		if resp.err != nil {
			return nil, resp.err
		}

		if msg, ok := resp.data["error"].(string); ok && msg != "" {
			return nil, errors.New(msg)
		}

		return searcher.Limit(parseResults(c.engine, resp.data), options), nil
	}
}

func (c *Client) parameters(query string, options *searcher.SearchOptions) map[string]string {
	parameter := map[string]string{
		"q": query,
	}

	if c.location != "" {
		parameter["location"] = c.location
	}

	if c.engine == engine.Google {
		parameter["google_domain"] = "google.com"

		if c.language != "" {
			parameter["hl"] = c.language
		}

		if options != nil && options.Limit != nil && *options.Limit > 0 {
			parameter["num"] = strconv.Itoa(*options.Limit)
		}
	}

	if c.engine == engine.Bing {
		if options != nil && options.Limit != nil && *options.Limit > 0 {
			parameter["count"] = strconv.Itoa(*options.Limit)
		}
	}

	return parameter
}

func parseResults(e engine.Engine, data map[string]any) []searcher.Result {
	items, ok := data["organic_results"].([]any)

	if !ok {
		return nil
	}

	var results []searcher.Result

	for _, item := range items {
		r, ok := item.(map[string]any)

		if !ok {
			continue
		}

		title, _ := r["title"].(string)
		link, _ := r["link"].(string)
		snippet, _ := r["snippet"].(string)

		if title == "" || link == "" {
			continue
		}

		results = append(results, searcher.Result{
			ID: searcher.NewID(),

			Title:   title,
			URL:     link,
			Snippet: snippet,

			Source: e,
		})
	}

	return results
}
