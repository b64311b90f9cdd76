package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/adrianliechti/prism/pkg/engine"
	"github.com/adrianliechti/prism/pkg/searcher"
)

var _ searcher.Provider = &Client{}

type Client struct {
	url    string
	token  string
	client *http.Client

	engine engine.Engine
}

// New returns a Tavily backed provider whose results are tagged with e.
func New(e engine.Engine, token string, options ...Option) (*Client, error) {
	c := &Client{
		url:    "https://api.tavily.com/search",
		token:  token,
		client: http.DefaultClient,

		engine: e,
	}

	for _, option := range options {
		option(c)
	}

	if c.token == "" {
		return nil, errors.New("invalid token")
	}

	if !c.engine.Valid() {
		return nil, errors.New("invalid engine: " + c.engine.String())
	}

	return c, nil
}

func (c *Client) Search(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
	body := searchRequest{
		Query:       query,
		SearchDepth: "basic",
	}

	if options != nil && options.Limit != nil {
		body.MaxResults = *options.Limit
	}

	data, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var result searchResult

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	var results []searcher.Result

	for _, r := range result.Results {
		results = append(results, searcher.Result{
			ID: searcher.NewID(),

			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Content,

			Source: c.engine,
		})
	}

	return searcher.Limit(results, options), nil
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	var result errorResult

	if err := json.Unmarshal(data, &result); err == nil && result.Detail.Error != "" {
		return errors.New(result.Detail.Error)
	}

	if text := strings.TrimSpace(string(data)); text != "" {
		return errors.New(text)
	}

	return errors.New(resp.Status)
}
