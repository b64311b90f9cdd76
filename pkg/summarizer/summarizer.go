package summarizer

import (
	"context"

	"github.com/adrianliechti/prism/pkg/searcher"
)

type Provider interface {
	Summarize(ctx context.Context, query string, results []searcher.Result) (*Summary, error)
}

type Summary struct {
	Text string
}
