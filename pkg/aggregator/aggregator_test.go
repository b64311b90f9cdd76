package aggregator_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adrianliechti/prism/pkg/aggregator"
	"github.com/adrianliechti/prism/pkg/engine"
	"github.com/adrianliechti/prism/pkg/searcher"
	"github.com/adrianliechti/prism/pkg/searcher/mock"

	"github.com/stretchr/testify/require"
)

type providerFunc func(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error)

func (f providerFunc) Search(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
	return f(ctx, query, options)
}

func failing(err error) searcher.Provider {
	return providerFunc(func(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
		return nil, err
	})
}

func mockAggregator(t *testing.T, delay time.Duration, extra ...aggregator.Option) *aggregator.Aggregator {
	var options []aggregator.Option

	for _, e := range engine.All() {
		p, err := mock.New(e, mock.WithDelay(delay))
		require.NoError(t, err)

		options = append(options, aggregator.WithProvider(e, p))
	}

	return aggregator.New(append(options, extra...)...)
}

func TestSearchAllEngines(t *testing.T) {
	a := mockAggregator(t, 0)

	result, err := a.Search(context.Background(), "rust ownership")
	require.NoError(t, err)

	require.Equal(t, "rust ownership", result.Query)
	require.GreaterOrEqual(t, len(result.Results), 5)
	require.LessOrEqual(t, len(result.Results), 15)
	require.Empty(t, result.Failures)
	require.Equal(t, engine.All(), result.Engines)

	ids := map[string]bool{}

	for _, r := range result.Results {
		require.True(t, r.Source.Valid())
		require.False(t, ids[r.ID], "duplicate id %s", r.ID)

		ids[r.ID] = true
	}

	groups := result.Grouped()
	require.Len(t, groups, 5)

	for _, e := range engine.All() {
		require.NotEmpty(t, groups[e], e.String())
	}
}

func TestSearchConcurrent(t *testing.T) {
	a := mockAggregator(t, 200*time.Millisecond)

	started := time.Now()

	result, err := a.Search(context.Background(), "rust ownership")
	require.NoError(t, err)
	require.Len(t, result.Engines, 5)

	require.Less(t, time.Since(started), 800*time.Millisecond)
}

func TestSearchConcurrencyLimit(t *testing.T) {
	var inflight, peak atomic.Int32

	p := providerFunc(func(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
		n := inflight.Add(1)
		defer inflight.Add(-1)

		for {
			current := peak.Load()

			if n <= current || peak.CompareAndSwap(current, n) {
				break
			}
		}

		time.Sleep(20 * time.Millisecond)

		return []searcher.Result{{Title: query, URL: "https://example.com"}}, nil
	})

	var options []aggregator.Option

	for _, e := range engine.All() {
		options = append(options, aggregator.WithProvider(e, p))
	}

	a := aggregator.New(append(options, aggregator.WithConcurrency(2))...)

	result, err := a.Search(context.Background(), "rust")
	require.NoError(t, err)

	require.Len(t, result.Results, 5)
	require.Equal(t, int32(2), peak.Load())
}

func TestSearchPartialFailure(t *testing.T) {
	boom := errors.New("bing is down")

	a := mockAggregator(t, 0, aggregator.WithProvider(engine.Bing, failing(boom)))

	result, err := a.Search(context.Background(), "rust ownership")
	require.NoError(t, err)

	require.Len(t, result.Engines, 4)
	require.NotContains(t, result.Engines, engine.Bing)

	require.Len(t, result.Failures, 1)
	require.Equal(t, engine.Bing, result.Failures[0].Engine)
	require.ErrorIs(t, result.Failures[0], boom)

	for _, r := range result.Results {
		require.NotEqual(t, engine.Bing, r.Source)
	}
}

func TestSearchAllFailed(t *testing.T) {
	boom := errors.New("offline")

	var options []aggregator.Option

	for _, e := range engine.All() {
		options = append(options, aggregator.WithProvider(e, failing(boom)))
	}

	a := aggregator.New(options...)

	result, err := a.Search(context.Background(), "rust ownership")
	require.NoError(t, err)

	require.Empty(t, result.Results)
	require.NotNil(t, result.Results)
	require.Empty(t, result.Engines)
	require.Len(t, result.Failures, 5)
}

func TestSearchEmptyQuery(t *testing.T) {
	var calls atomic.Int32

	p := providerFunc(func(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
		calls.Add(1)
		return nil, nil
	})

	a := aggregator.New(aggregator.WithProvider(engine.Google, p))

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := a.Search(context.Background(), query)

		var aerr *aggregator.AggregationError
		require.ErrorAs(t, err, &aerr)
		require.ErrorIs(t, err, aggregator.ErrInvalidQuery)
	}

	require.Zero(t, calls.Load())
}

func TestSearchNoProviders(t *testing.T) {
	a := aggregator.New()

	_, err := a.Search(context.Background(), "rust")
	require.ErrorIs(t, err, aggregator.ErrNoProviders)
}

func TestSearchTrimsQuery(t *testing.T) {
	var seen string

	p := providerFunc(func(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
		seen = query
		return nil, nil
	})

	a := aggregator.New(aggregator.WithProvider(engine.Google, p))

	result, err := a.Search(context.Background(), "  rust  ")
	require.NoError(t, err)

	require.Equal(t, "rust", seen)
	require.Equal(t, "rust", result.Query)
}

func TestSearchTimeout(t *testing.T) {
	stuck := providerFunc(func(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
		time.Sleep(2 * time.Second)
		return []searcher.Result{{ID: "late", Source: engine.Brave}}, nil
	})

	a := mockAggregator(t, 0,
		aggregator.WithProvider(engine.Brave, stuck),
		aggregator.WithTimeout(50*time.Millisecond),
	)

	started := time.Now()

	result, err := a.Search(context.Background(), "rust")
	require.NoError(t, err)

	require.Less(t, time.Since(started), time.Second)

	require.Len(t, result.Failures, 1)
	require.Equal(t, engine.Brave, result.Failures[0].Engine)
	require.ErrorIs(t, result.Failures[0], context.DeadlineExceeded)
}

func TestSearchPanic(t *testing.T) {
	broken := providerFunc(func(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
		panic("nil map")
	})

	a := mockAggregator(t, 0, aggregator.WithProvider(engine.YouCom, broken))

	result, err := a.Search(context.Background(), "rust")
	require.NoError(t, err)

	require.Len(t, result.Engines, 4)
	require.Len(t, result.Failures, 1)
	require.Equal(t, engine.YouCom, result.Failures[0].Engine)
}

func TestSearchNormalizesResults(t *testing.T) {
	sloppy := providerFunc(func(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
		return []searcher.Result{
			{ID: "same", Title: "a", Source: engine.Google},
			{ID: "same", Title: "b", Source: engine.Bing},
			{Title: "c"},
		}, nil
	})

	other := providerFunc(func(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
		return []searcher.Result{
			{ID: "same", Title: "d", Source: engine.DuckDuckGo},
		}, nil
	})

	a := aggregator.New(
		aggregator.WithProvider(engine.Bing, sloppy),
		aggregator.WithProvider(engine.DuckDuckGo, other),
	)

	result, err := a.Search(context.Background(), "rust")
	require.NoError(t, err)
	require.Len(t, result.Results, 4)

	ids := map[string]bool{}

	for i, r := range result.Results {
		require.NotEmpty(t, r.ID)
		require.False(t, ids[r.ID])

		ids[r.ID] = true

		if i < 3 {
			require.Equal(t, engine.Bing, r.Source)
		} else {
			require.Equal(t, engine.DuckDuckGo, r.Source)
		}
	}
}

func TestSearchLimit(t *testing.T) {
	var requested *int

	p := providerFunc(func(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
		requested = options.Limit
		return nil, nil
	})

	a := aggregator.New(aggregator.WithProvider(engine.Google, p), aggregator.WithLimit(3))

	_, err := a.Search(context.Background(), "rust")
	require.NoError(t, err)

	require.NotNil(t, requested)
	require.Equal(t, 3, *requested)
}

func TestSearchCancelled(t *testing.T) {
	a := mockAggregator(t, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := a.Search(ctx, "rust")

	var aerr *aggregator.AggregationError
	require.ErrorAs(t, err, &aerr)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngines(t *testing.T) {
	a := aggregator.New(
		aggregator.WithProvider(engine.Brave, failing(nil)),
		aggregator.WithProvider(engine.Google, failing(nil)),
		aggregator.WithProvider(engine.Brave, failing(nil)),
	)

	require.Equal(t, []engine.Engine{engine.Brave, engine.Google}, a.Engines())
}
