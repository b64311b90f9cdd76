package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/adrianliechti/prism/pkg/searcher"
	"github.com/adrianliechti/prism/pkg/summarizer"
)

var _ summarizer.Provider = (*Client)(nil)

// Client calls a summary backend speaking the generate-summary contract:
// {query, searchResults} in, {answer} or {error} out.
type Client struct {
	url    string
	token  string
	client *http.Client
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" || !(strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")) {
		return nil, errors.New("invalid url")
	}

	c := &Client{
		url:    url,
		client: http.DefaultClient,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Summarize(ctx context.Context, query string, results []searcher.Result) (*summarizer.Summary, error) {
	if results == nil {
		results = []searcher.Result{}
	}

	body, err := json.Marshal(summaryRequest{
		Query:         query,
		SearchResults: results,
	})

	if err != nil {
		return nil, summarizer.Wrap(err)
	}

	req, _ := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("apikey", c.token)
	}

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, summarizer.Wrap(err)
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, summarizer.Wrap(err)
	}

	var result summaryResponse

	if err := json.Unmarshal(data, &result); err != nil {
		if resp.StatusCode/100 != 2 {
			return nil, summarizer.Wrap(errors.New(resp.Status))
		}

		return nil, summarizer.Wrap(errors.New("malformed response: " + err.Error()))
	}

	if resp.StatusCode/100 != 2 {
		if result.Error != "" {
			return nil, summarizer.Wrap(errors.New(result.Error))
		}

		return nil, summarizer.Wrap(errors.New(resp.Status))
	}

	if result.Error != "" {
		return nil, summarizer.Wrap(errors.New(result.Error))
	}

	answer := result.Answer

	if answer == "" {
		answer = result.Summary
	}

	return summarizer.Answer(answer)
}
