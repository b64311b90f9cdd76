package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/adrianliechti/prism/server/api"
)

type EngineService struct {
	Options []RequestOption
}

func NewEngineService(opts ...RequestOption) EngineService {
	return EngineService{
		Options: opts,
	}
}

type Engine = api.Engine

func (r *EngineService) List(ctx context.Context, opts ...RequestOption) ([]Engine, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	req, _ := http.NewRequestWithContext(ctx, "GET", c.URL+"/v1/engines", nil)
	c.authorize(req)

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var result []Engine

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result, nil
}
