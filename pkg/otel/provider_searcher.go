package otel

import (
	"context"
	"errors"
	"time"

	"github.com/adrianliechti/prism/pkg/searcher"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type Searcher interface {
	Observable
	searcher.Provider
}

type observableSearcher struct {
	name     string
	provider string

	searcher searcher.Provider

	results  metric.Int64Counter
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

func NewSearcher(provider, name string, p searcher.Provider) Searcher {
	s := &observableSearcher{
		searcher: p,

		name:     name,
		provider: provider,
	}

	s.otelSetup()

	return s
}

func (p *observableSearcher) otelSetup() {
	meter := otel.Meter(instrumentationName)

	p.results, _ = meter.Int64Counter("prism.search.results",
		metric.WithDescription("Number of results returned by search providers"),
	)

	p.failures, _ = meter.Int64Counter("prism.search.failures",
		metric.WithDescription("Number of failed search provider calls"),
	)

	p.duration, _ = meter.Float64Histogram("prism.search.duration",
		metric.WithDescription("Duration of search provider calls"),
		metric.WithUnit("s"),
	)
}

func (p *observableSearcher) Search(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "search "+p.name, trace.WithAttributes(
		String("search.engine", p.name),
		String("search.provider", p.provider),
	))

	defer span.End()

	started := time.Now()

	result, err := p.searcher.Search(ctx, query, options)

	attrs := metric.WithAttributes(
		String("search.engine", p.name),
		String("search.provider", p.provider),
	)

	p.duration.Record(ctx, time.Since(started).Seconds(), attrs)

	if err != nil {
		recordError(span, err)

		if !errors.Is(err, context.Canceled) {
			p.failures.Add(ctx, 1, attrs)
		}

		return nil, err
	}

	span.SetAttributes(Int("search.results", len(result)))
	p.results.Add(ctx, int64(len(result)), attrs)

	return result, nil
}
