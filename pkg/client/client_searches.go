package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/adrianliechti/prism/server/api"
)

type SearchService struct {
	Options []RequestOption
}

func NewSearchService(opts ...RequestOption) SearchService {
	return SearchService{
		Options: opts,
	}
}

type SearchResult = api.SearchResult
type SearchResponse = api.SearchResponse

type SearchRequest struct {
	Query string
}

func (r *SearchService) New(ctx context.Context, input SearchRequest, opts ...RequestOption) (*SearchResponse, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	body, _ := json.Marshal(api.SearchRequest{
		Query: input.Query,
	})

	req, _ := http.NewRequestWithContext(ctx, "POST", c.URL+"/v1/search", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	c.authorize(req)

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var result SearchResponse

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}
