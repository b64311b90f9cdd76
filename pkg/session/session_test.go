package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/adrianliechti/prism/pkg/aggregator"
	"github.com/adrianliechti/prism/pkg/engine"
	"github.com/adrianliechti/prism/pkg/searcher"
	"github.com/adrianliechti/prism/pkg/searcher/mock"
	"github.com/adrianliechti/prism/pkg/session"
	"github.com/adrianliechti/prism/pkg/summarizer"

	"github.com/stretchr/testify/require"
)

type blockingSearcher struct {
	mu sync.Mutex

	calls   []string
	started map[string]chan struct{}
	release map[string]chan struct{}
}

func newBlockingSearcher(queries ...string) *blockingSearcher {
	s := &blockingSearcher{
		started: map[string]chan struct{}{},
		release: map[string]chan struct{}{},
	}

	for _, q := range queries {
		s.started[q] = make(chan struct{})
		s.release[q] = make(chan struct{})
	}

	return s
}

// Search ignores ctx so that stale results arrive after a newer query.
func (s *blockingSearcher) Search(ctx context.Context, query string) (*aggregator.Result, error) {
	s.mu.Lock()
	s.calls = append(s.calls, query)
	s.mu.Unlock()

	close(s.started[query])
	<-s.release[query]

	return &aggregator.Result{
		Query: query,

		Results: []searcher.Result{
			{ID: query, Title: query, URL: "https://example.com/" + query, Source: engine.Google},
		},

		Engines: []engine.Engine{engine.Google},
	}, nil
}

type staticSummarizer struct {
	err error
}

func (s staticSummarizer) Summarize(ctx context.Context, query string, results []searcher.Result) (*summarizer.Summary, error) {
	if s.err != nil {
		return nil, s.err
	}

	return &summarizer.Summary{Text: "answer for " + query}, nil
}

type countingSearcher struct {
	calls int
}

func (s *countingSearcher) Search(ctx context.Context, query string) (*aggregator.Result, error) {
	s.calls++
	return &aggregator.Result{Query: query}, nil
}

type failingSearcher struct{}

func (failingSearcher) Search(ctx context.Context, query string) (*aggregator.Result, error) {
	return nil, &aggregator.AggregationError{Err: aggregator.ErrNoProviders}
}

func newAggregator(t *testing.T) *aggregator.Aggregator {
	var options []aggregator.Option

	for _, e := range engine.All() {
		p, err := mock.New(e, mock.WithDelay(10*time.Millisecond))
		require.NoError(t, err)

		options = append(options, aggregator.WithProvider(e, p))
	}

	return aggregator.New(options...)
}

func TestSubmit(t *testing.T) {
	s := session.New(newAggregator(t), session.WithSummarizer(staticSummarizer{}))

	state, err := s.Submit(context.Background(), "  rust ownership ")
	require.NoError(t, err)

	require.Equal(t, "rust ownership", state.Query)
	require.NotEmpty(t, state.Results)
	require.Len(t, state.Grouped(), len(engine.All()))

	require.NoError(t, state.AnswerErr)
	require.Equal(t, "answer for rust ownership", state.Answer.Text)

	require.False(t, state.Searching)
	require.False(t, state.Summarizing)
}

func TestSubmitStale(t *testing.T) {
	backend := newBlockingSearcher("first", "second")
	s := session.New(backend, session.WithSummarizer(staticSummarizer{}))

	type outcome struct {
		state session.State
		err   error
	}

	first := make(chan outcome, 1)

	go func() {
		state, err := s.Submit(context.Background(), "first")
		first <- outcome{state, err}
	}()

	<-backend.started["first"]

	second := make(chan outcome, 1)

	go func() {
		state, err := s.Submit(context.Background(), "second")
		second <- outcome{state, err}
	}()

	<-backend.started["second"]

	close(backend.release["second"])
	result := <-second

	require.NoError(t, result.err)
	require.Equal(t, "answer for second", result.state.Answer.Text)

	close(backend.release["first"])
	stale := <-first

	require.ErrorIs(t, stale.err, session.ErrSuperseded)

	state := s.State()

	require.Equal(t, "second", state.Query)
	require.Len(t, state.Results, 1)
	require.Equal(t, "second", state.Results[0].ID)
	require.Equal(t, "answer for second", state.Answer.Text)
}

func TestSubmitEmptyQuery(t *testing.T) {
	backend := &countingSearcher{}
	s := session.New(backend)

	_, err := s.Submit(context.Background(), "   ")

	var aerr *aggregator.AggregationError
	require.ErrorAs(t, err, &aerr)
	require.ErrorIs(t, err, aggregator.ErrInvalidQuery)

	require.Zero(t, backend.calls)
	require.Zero(t, s.State().Generation)
}

func TestSubmitSummaryError(t *testing.T) {
	s := session.New(newAggregator(t), session.WithSummarizer(staticSummarizer{
		err: errors.New("status 500"),
	}))

	state, err := s.Submit(context.Background(), "rust")
	require.NoError(t, err)

	require.NotEmpty(t, state.Results)
	require.Nil(t, state.Answer)

	var serr *summarizer.SummaryError
	require.ErrorAs(t, state.AnswerErr, &serr)
}

func TestSubmitAggregationError(t *testing.T) {
	s := session.New(failingSearcher{}, session.WithSummarizer(staticSummarizer{}))

	state, err := s.Submit(context.Background(), "rust")
	require.ErrorIs(t, err, aggregator.ErrNoProviders)

	require.Empty(t, state.Results)
	require.Nil(t, state.Answer)
	require.ErrorIs(t, state.Err, aggregator.ErrNoProviders)
}

func TestReset(t *testing.T) {
	var states []session.State

	s := session.New(newAggregator(t), session.WithChangeHandler(func(state session.State) {
		states = append(states, state)
	}))

	_, err := s.Submit(context.Background(), "rust")
	require.NoError(t, err)

	s.Reset()

	state := s.State()
	require.Empty(t, state.Query)
	require.Empty(t, state.Results)
	require.Equal(t, uint64(2), state.Generation)

	require.Len(t, states, 3)
	require.True(t, states[0].Searching)
	require.False(t, states[1].Searching)
}
