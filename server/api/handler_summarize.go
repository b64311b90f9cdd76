package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/adrianliechti/prism/pkg/searcher"
	"github.com/adrianliechti/prism/pkg/text"
)

var errNoSummarizer = errors.New("no summarizer configured")

func (h *Handler) handleSummarize(w http.ResponseWriter, r *http.Request) {
	p := h.Summarizer()

	if p == nil {
		writeError(w, http.StatusInternalServerError, errNoSummarizer)
		return
	}

	var req SummarizeRequest

	if err := readJson(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	results := make([]searcher.Result, 0, len(req.SearchResults))

	for _, r := range req.SearchResults {
		results = append(results, fromSearchResult(r))
	}

	ctx := r.Context()

	if h.SummaryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.SummaryTimeout)
		defer cancel()
	}

	summary, err := p.Summarize(ctx, strings.TrimSpace(req.Query), results)

	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := SummarizeResponse{
		Answer: summary.Text,
	}

	if strings.EqualFold(valueFormat(r), "html") {
		html, err := text.RenderHTML(summary.Text)

		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		resp.AnswerHTML = html
	}

	writeJson(w, resp)
}
