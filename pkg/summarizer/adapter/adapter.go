package adapter

import (
	"context"

	"github.com/adrianliechti/prism/pkg/provider"
	"github.com/adrianliechti/prism/pkg/searcher"
	"github.com/adrianliechti/prism/pkg/summarizer"
)

var _ summarizer.Provider = (*Adapter)(nil)

// Adapter answers queries with a single completion request.
type Adapter struct {
	completer provider.Completer

	options *provider.CompleteOptions
}

func FromCompleter(completer provider.Completer, options ...Option) *Adapter {
	a := &Adapter{
		completer: completer,

		options: &provider.CompleteOptions{},
	}

	for _, option := range options {
		option(a)
	}

	return a
}

type Option func(*Adapter)

func WithMaxTokens(tokens int) Option {
	return func(a *Adapter) {
		a.options.MaxTokens = &tokens
	}
}

func WithTemperature(temperature float32) Option {
	return func(a *Adapter) {
		a.options.Temperature = &temperature
	}
}

func (a *Adapter) Summarize(ctx context.Context, query string, results []searcher.Result) (*summarizer.Summary, error) {
	messages := []provider.Message{
		provider.SystemMessage(summarizer.Instructions),
		provider.UserMessage(summarizer.Prompt(query, results)),
	}

	completion, err := a.completer.Complete(ctx, messages, a.options)

	if err != nil {
		return nil, summarizer.Wrap(err)
	}

	return summarizer.Answer(completion.Text())
}
