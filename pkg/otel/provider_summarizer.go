package otel

import (
	"context"

	"github.com/adrianliechti/prism/pkg/searcher"
	"github.com/adrianliechti/prism/pkg/summarizer"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Summarizer interface {
	Observable
	summarizer.Provider
}

type observableSummarizer struct {
	model    string
	provider string

	summarizer summarizer.Provider
}

func NewSummarizer(provider, model string, p summarizer.Provider) Summarizer {
	return &observableSummarizer{
		summarizer: p,

		model:    model,
		provider: provider,
	}
}

func (p *observableSummarizer) otelSetup() {
}

func (p *observableSummarizer) Summarize(ctx context.Context, query string, results []searcher.Result) (*summarizer.Summary, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "summarize "+p.model, trace.WithAttributes(
		String("gen_ai.system", p.provider),
		String("gen_ai.request.model", p.model),
		Int("summary.results", len(results)),
	))

	defer span.End()

	summary, err := p.summarizer.Summarize(ctx, query, results)

	if err != nil {
		recordError(span, err)
		return nil, err
	}

	if EnableDebug {
		span.SetAttributes(String("summary.text", summary.Text))
	}

	return summary, nil
}
