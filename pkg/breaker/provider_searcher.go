package breaker

import (
	"context"

	"github.com/adrianliechti/prism/pkg/searcher"

	"github.com/sony/gobreaker/v2"
)

type Searcher struct {
	name string

	provider searcher.Provider
	breaker  *gobreaker.CircuitBreaker[[]searcher.Result]
}

var _ searcher.Provider = (*Searcher)(nil)

// NewSearcher makes a provider that keeps failing fail fast until it recovers.
func NewSearcher(name string, p searcher.Provider, cfg Config) *Searcher {
	return &Searcher{
		name: name,

		provider: p,
		breaker:  newBreaker[[]searcher.Result]("searcher:"+name, cfg),
	}
}

func (s *Searcher) Search(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
	results, err := s.breaker.Execute(func() ([]searcher.Result, error) {
		return s.provider.Search(ctx, query, options)
	})

	if err != nil {
		return nil, convertError(s.name, err)
	}

	return results, nil
}

func (s *Searcher) State() gobreaker.State {
	return s.breaker.State()
}
