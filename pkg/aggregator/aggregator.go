package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/adrianliechti/prism/pkg/engine"
	"github.com/adrianliechti/prism/pkg/searcher"

	"golang.org/x/sync/errgroup"
)

const DefaultTimeout = 10 * time.Second

type Aggregator struct {
	engines   []engine.Engine
	providers map[engine.Engine]searcher.Provider

	timeout time.Duration
	limit   *int

	concurrency int
}

type Result struct {
	Query string

	Results []searcher.Result

	// Engines lists the providers that answered, in configured order.
	Engines []engine.Engine

	// Failures lists the providers whose contribution was dropped.
	Failures []*searcher.ProviderError
}

// Grouped returns the results keyed by their source engine.
func (r *Result) Grouped() map[engine.Engine][]searcher.Result {
	groups := make(map[engine.Engine][]searcher.Result)

	for _, result := range r.Results {
		groups[result.Source] = append(groups[result.Source], result)
	}

	return groups
}

func New(options ...Option) *Aggregator {
	a := &Aggregator{
		providers: make(map[engine.Engine]searcher.Provider),

		timeout: DefaultTimeout,
	}

	for _, option := range options {
		option(a)
	}

	return a
}

// Engines returns the configured engines in merge order.
func (a *Aggregator) Engines() []engine.Engine {
	return append([]engine.Engine(nil), a.engines...)
}

// Search sends query to every provider concurrently and waits until all of
// them have answered, failed or timed out. Provider failures only remove that
// provider's results; an empty corpus is a valid outcome.
func (a *Aggregator) Search(ctx context.Context, query string) (*Result, error) {
	query = strings.TrimSpace(query)

	if query == "" {
		return nil, &AggregationError{Err: ErrInvalidQuery}
	}

	if len(a.engines) == 0 {
		return nil, &AggregationError{Err: ErrNoProviders}
	}

	started := time.Now()
	outcomes := make([]outcome, len(a.engines))

	// failures are collected in outcomes, the group only bounds and awaits the calls
	var g errgroup.Group

	if a.concurrency > 0 {
		g.SetLimit(a.concurrency)
	}

	for i, e := range a.engines {
		p := a.providers[e]

		g.Go(func() error {
			outcomes[i] = a.search(ctx, e, p, query)
			return nil
		})
	}

	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, &AggregationError{Err: err}
	}

	result := &Result{
		Query: query,

		Results: make([]searcher.Result, 0),
	}

	seen := make(map[string]bool)

	for i, e := range a.engines {
		o := outcomes[i]

		if o.err != nil {
			slog.WarnContext(ctx, "search provider failed", "engine", e.String(), "error", o.err)

			result.Failures = append(result.Failures, &searcher.ProviderError{
				Engine: e,
				Err:    o.err,
			})

			continue
		}

		result.Engines = append(result.Engines, e)

		for _, r := range o.results {
			if r.Source != e {
				r.Source = e
			}

			if r.ID == "" || seen[r.ID] {
				r.ID = searcher.NewID()
			}

			seen[r.ID] = true
			result.Results = append(result.Results, r)
		}
	}

	slog.DebugContext(ctx, "search aggregated",
		"query", query,
		"results", len(result.Results),
		"engines", len(result.Engines),
		"failures", len(result.Failures),
		"duration", time.Since(started),
	)

	return result, nil
}

type outcome struct {
	results []searcher.Result
	err     error
}

// search runs one provider call. The call is abandoned once its deadline passes.
func (a *Aggregator) search(ctx context.Context, e engine.Engine, p searcher.Provider, query string) outcome {
	if a.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	options := &searcher.SearchOptions{
		Limit: a.limit,
	}

	ch := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("provider %s panicked: %v", e, r)}
			}
		}()

		results, err := p.Search(ctx, query, options)
		ch <- outcome{results: results, err: err}
	}()

	select {
	case <-ctx.Done():
		return outcome{err: ctx.Err()}

	case o := <-ch:
		return o
	}
}
