package breaker

import (
	"context"

	"github.com/adrianliechti/prism/pkg/searcher"
	"github.com/adrianliechti/prism/pkg/summarizer"

	"github.com/sony/gobreaker/v2"
)

type Summarizer struct {
	name string

	provider summarizer.Provider
	breaker  *gobreaker.CircuitBreaker[*summarizer.Summary]
}

var _ summarizer.Provider = (*Summarizer)(nil)

func NewSummarizer(name string, p summarizer.Provider, cfg Config) *Summarizer {
	return &Summarizer{
		name: name,

		provider: p,
		breaker:  newBreaker[*summarizer.Summary]("summarizer:"+name, cfg),
	}
}

func (s *Summarizer) Summarize(ctx context.Context, query string, results []searcher.Result) (*summarizer.Summary, error) {
	summary, err := s.breaker.Execute(func() (*summarizer.Summary, error) {
		return s.provider.Summarize(ctx, query, results)
	})

	if err != nil {
		return nil, summarizer.Wrap(convertError(s.name, err))
	}

	return summary, nil
}

func (s *Summarizer) State() gobreaker.State {
	return s.breaker.State()
}
