package api

import (
	"errors"
	"net/http"

	"github.com/adrianliechti/prism/pkg/aggregator"
)

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest

	if isJson(r) {
		if err := readJson(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	} else {
		req.Query = r.FormValue("query")
	}

	result, err := h.aggregator.Search(r.Context(), req.Query)

	if err != nil {
		code := http.StatusInternalServerError

		if errors.Is(err, aggregator.ErrInvalidQuery) {
			code = http.StatusBadRequest
		}

		if errors.Is(err, aggregator.ErrNoProviders) {
			code = http.StatusServiceUnavailable
		}

		writeError(w, code, err)
		return
	}

	resp := SearchResponse{
		Query: result.Query,

		Results:  make([]SearchResult, 0, len(result.Results)),
		Engines:  make([]string, 0, len(result.Engines)),
		Failures: make([]Failure, 0, len(result.Failures)),
	}

	for _, r := range result.Results {
		resp.Results = append(resp.Results, toSearchResult(r))
	}

	for _, e := range result.Engines {
		resp.Engines = append(resp.Engines, e.String())
	}

	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, Failure{
			Engine: f.Engine.String(),
			Error:  f.Err.Error(),
		})
	}

	writeJson(w, resp)
}
