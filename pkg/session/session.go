package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/adrianliechti/prism/pkg/aggregator"
	"github.com/adrianliechti/prism/pkg/engine"
	"github.com/adrianliechti/prism/pkg/searcher"
	"github.com/adrianliechti/prism/pkg/summarizer"
)

const DefaultSummaryTimeout = 30 * time.Second

// ErrSuperseded is returned by Submit when a newer query or a reset
// replaced the pipeline before it completed.
var ErrSuperseded = errors.New("superseded by a newer query")

type Searcher interface {
	Search(ctx context.Context, query string) (*aggregator.Result, error)
}

// State is a snapshot of the pipeline for the current query.
type State struct {
	Generation uint64

	Query string

	Results  []searcher.Result
	Engines  []engine.Engine
	Failures []*searcher.ProviderError

	// Err holds the aggregation error. Results are empty when set.
	Err error

	Answer *summarizer.Summary

	// AnswerErr holds the summary error. Results are kept when set.
	AnswerErr error

	Searching   bool
	Summarizing bool
}

func (s State) Grouped() map[engine.Engine][]searcher.Result {
	result := &aggregator.Result{
		Results: s.Results,
	}

	return result.Grouped()
}

// Session runs the search and summary pipeline for one user. Every Submit
// starts a new generation; results of older generations are dropped.
type Session struct {
	searcher   Searcher
	summarizer summarizer.Provider

	summaryTimeout time.Duration

	onChange func(State)

	mu sync.Mutex

	generation uint64
	cancel     context.CancelFunc

	state State
}

func New(searcher Searcher, options ...Option) *Session {
	s := &Session{
		searcher: searcher,

		summaryTimeout: DefaultSummaryTimeout,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Reset cancels the in-flight pipeline and clears the state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.state = State{
		Generation: s.generation,
	}

	s.notify()
}

// Submit runs the pipeline for query and returns the committed state.
// An empty query is rejected without touching the current state.
func (s *Session) Submit(ctx context.Context, query string) (State, error) {
	query = strings.TrimSpace(query)

	if query == "" {
		return s.State(), &aggregator.AggregationError{Err: aggregator.ErrInvalidQuery}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	generation := s.begin(query, cancel)

	result, err := s.searcher.Search(ctx, query)

	if err != nil {
		state, ok := s.commit(generation, func(state *State) {
			state.Err = err
			state.Searching = false
		})

		if !ok {
			return state, ErrSuperseded
		}

		return state, err
	}

	state, ok := s.commit(generation, func(state *State) {
		state.Results = result.Results
		state.Engines = result.Engines
		state.Failures = result.Failures

		state.Searching = false
		state.Summarizing = s.summarizer != nil
	})

	if !ok {
		return state, ErrSuperseded
	}

	if s.summarizer == nil {
		return state, nil
	}

	summary, err := s.summarize(ctx, query, result.Results)

	state, ok = s.commit(generation, func(state *State) {
		state.Answer = summary
		state.AnswerErr = err

		state.Summarizing = false
	})

	if !ok {
		return state, ErrSuperseded
	}

	return state, nil
}

func (s *Session) begin(query string, cancel context.CancelFunc) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	s.generation++
	s.cancel = cancel

	s.state = State{
		Generation: s.generation,

		Query:     query,
		Searching: true,
	}

	s.notify()

	return s.generation
}

func (s *Session) commit(generation uint64, apply func(*State)) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		slog.Debug("discarding stale pipeline result", "generation", generation, "current", s.generation)
		return s.state, false
	}

	apply(&s.state)
	s.notify()

	return s.state, true
}

func (s *Session) summarize(ctx context.Context, query string, results []searcher.Result) (*summarizer.Summary, error) {
	if s.summaryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.summaryTimeout)
		defer cancel()
	}

	summary, err := s.summarizer.Summarize(ctx, query, results)

	if err != nil {
		return nil, summarizer.Wrap(err)
	}

	return summary, nil
}

func (s *Session) notify() {
	if s.onChange != nil {
		s.onChange(s.state)
	}
}
