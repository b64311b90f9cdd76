package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/adrianliechti/prism/server/api"
)

type SummaryService struct {
	Options []RequestOption
}

func NewSummaryService(opts ...RequestOption) SummaryService {
	return SummaryService{
		Options: opts,
	}
}

type Summary struct {
	Text string
	HTML string
}

type SummaryRequest struct {
	Query string

	Results []SearchResult

	// HTML additionally requests the answer rendered as HTML.
	HTML bool
}

func (r *SummaryService) New(ctx context.Context, input SummaryRequest, opts ...RequestOption) (*Summary, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	results := input.Results

	if results == nil {
		results = []SearchResult{}
	}

	body, _ := json.Marshal(api.SummarizeRequest{
		Query: input.Query,

		SearchResults: results,
	})

	url := c.URL + "/v1/summarize"

	if input.HTML {
		url += "?format=html"
	}

	req, _ := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
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

	var result api.SummarizeResponse

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &Summary{
		Text: result.Answer,
		HTML: result.AnswerHTML,
	}, nil
}
