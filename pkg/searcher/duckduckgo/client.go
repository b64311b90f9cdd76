package duckduckgo

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/adrianliechti/prism/pkg/engine"
	"github.com/adrianliechti/prism/pkg/searcher"
	"github.com/adrianliechti/prism/pkg/text"

	"github.com/PuerkitoBio/goquery"
)

var _ searcher.Provider = &Client{}

type Client struct {
	url    string
	client *http.Client
}

func New(options ...Option) (*Client, error) {
	c := &Client{
		url:    "https://html.duckduckgo.com/html/",
		client: http.DefaultClient,
	}

	for _, option := range options {
		option(c)
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

	u.RawQuery = values.Encode()

	req, _ := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	req.Header.Set("Referer", "https://www.duckduckgo.com/")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.4 Safari/605.1.15")

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)

	if err != nil {
		return nil, err
	}

	var results []searcher.Result

	doc.Find(".result").Each(func(i int, s *goquery.Selection) {
		if s.HasClass("result--ad") {
			return
		}

		link := s.Find("a.result__a").First()

		title := text.Normalize(link.Text())
		snippet := text.Normalize(s.Find(".result__snippet").First().Text())

		href, _ := link.Attr("href")
		target := resolveLink(href)

		if title == "" || target == "" {
			return
		}

		results = append(results, searcher.Result{
			ID: searcher.NewID(),

			Title:   title,
			URL:     target,
			Snippet: snippet,

			Source: engine.DuckDuckGo,
		})
	})

	return searcher.Limit(results, options), nil
}

// resolveLink unwraps DuckDuckGo redirect links (/l/?uddg=...) to the target URL.
func resolveLink(href string) string {
	if href == "" {
		return ""
	}

	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	u, err := url.Parse(href)

	if err != nil {
		return ""
	}

	if target := u.Query().Get("uddg"); target != "" {
		return target
	}

	if !u.IsAbs() {
		return ""
	}

	return u.String()
}
