package aggregator

import (
	"time"

	"github.com/adrianliechti/prism/pkg/engine"
	"github.com/adrianliechti/prism/pkg/searcher"
)

type Option func(*Aggregator)

// WithProvider registers p as the provider for e. Engines are queried and
// merged in registration order; registering an engine twice replaces its provider.
func WithProvider(e engine.Engine, p searcher.Provider) Option {
	return func(a *Aggregator) {
		if _, ok := a.providers[e]; !ok {
			a.engines = append(a.engines, e)
		}

		a.providers[e] = p
	}
}

// WithTimeout bounds every single provider call. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(a *Aggregator) {
		a.timeout = timeout
	}
}

// WithLimit caps the number of results requested from each provider.
func WithLimit(limit int) Option {
	return func(a *Aggregator) {
		a.limit = &limit
	}
}

// WithConcurrency bounds the number of provider calls in flight. Zero or less
// queries every provider at once.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		a.concurrency = n
	}
}
