package limiter

import (
	"context"

	"github.com/adrianliechti/prism/pkg/searcher"
	"github.com/adrianliechti/prism/pkg/summarizer"

	"golang.org/x/time/rate"
)

type Summarizer interface {
	Limiter
	summarizer.Provider
}

type limitedSummarizer struct {
	limiter  *rate.Limiter
	provider summarizer.Provider
}

func NewSummarizer(l *rate.Limiter, p summarizer.Provider) Summarizer {
	return &limitedSummarizer{
		limiter:  l,
		provider: p,
	}
}

func (p *limitedSummarizer) limiterSetup() {
}

func (p *limitedSummarizer) Summarize(ctx context.Context, query string, results []searcher.Result) (*summarizer.Summary, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, summarizer.Wrap(err)
		}
	}

	return p.provider.Summarize(ctx, query, results)
}
