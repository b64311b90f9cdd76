package brave

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/adrianliechti/prism/pkg/engine"
	"github.com/adrianliechti/prism/pkg/searcher"
	"github.com/adrianliechti/prism/pkg/text"
)

var _ searcher.Provider = &Client{}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

type Client struct {
	url    string
	token  string
	client *http.Client
}

func New(token string, options ...Option) (*Client, error) {
	c := &Client{
		url:    "https://api.search.brave.com/res/v1/web/search",
		token:  token,
		client: http.DefaultClient,
	}

	for _, option := range options {
		option(c)
	}

	if c.token == "" {
		return nil, errors.New("invalid token")
	}

	return c, nil
}

func (c *Client) Search(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
	u, err := url.Parse(c.url)

	if err != nil {
		return nil, err
	}

	values := u.Query()
	values.Set("q", query)

	if options != nil && options.Limit != nil && *options.Limit > 0 {
		values.Set("count", strconv.Itoa(*options.Limit))
	}

	u.RawQuery = values.Encode()

	req, _ := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var data searchResponse

	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	var results []searcher.Result

	for _, r := range data.Web.Results {
		results = append(results, searcher.Result{
			ID: searcher.NewID(),

			Title:   stripTags(r.Title),
			URL:     r.URL,
			Snippet: stripTags(r.Description),

			Source: engine.Brave,
		})
	}

	return searcher.Limit(results, options), nil
}

func stripTags(s string) string {
	return text.Normalize(tagPattern.ReplaceAllString(s, ""))
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	var result errorResponse

	if err := json.Unmarshal(data, &result); err == nil && result.Error.Detail != "" {
		return errors.New(result.Error.Detail)
	}

	return errors.New(resp.Status)
}
