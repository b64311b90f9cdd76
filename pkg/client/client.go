package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type Client struct {
	Engines   EngineService
	Searches  SearchService
	Summaries SummaryService
}

func New(url string, opts ...RequestOption) *Client {
	opts = append(opts, WithURL(url))

	return &Client{
		Engines:   NewEngineService(opts...),
		Searches:  NewSearchService(opts...),
		Summaries: NewSummaryService(opts...),
	}
}

type RequestConfig struct {
	URL   string
	Token string

	Client *http.Client
}

type RequestOption func(*RequestConfig)

func WithURL(url string) RequestOption {
	return func(c *RequestConfig) {
		c.URL = strings.TrimRight(url, "/")
	}
}

func WithToken(token string) RequestOption {
	return func(c *RequestConfig) {
		c.Token = token
	}
}

func WithClient(client *http.Client) RequestOption {
	return func(c *RequestConfig) {
		c.Client = client
	}
}

func newRequestConfig(opts ...RequestOption) *RequestConfig {
	c := &RequestConfig{
		Client: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *RequestConfig) authorize(req *http.Request) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

func convertError(resp *http.Response) error {
	var result struct {
		Error string `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err == nil && result.Error != "" {
		return errors.New(result.Error)
	}

	return errors.New(resp.Status)
}
