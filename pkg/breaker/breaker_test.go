package breaker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adrianliechti/prism/pkg/breaker"
	"github.com/adrianliechti/prism/pkg/searcher"
	"github.com/adrianliechti/prism/pkg/summarizer"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/require"
)

type countingSearcher struct {
	calls int
	err   error
}

func (s *countingSearcher) Search(ctx context.Context, query string, options *searcher.SearchOptions) ([]searcher.Result, error) {
	s.calls++

	if s.err != nil {
		return nil, s.err
	}

	return []searcher.Result{{ID: "1"}}, nil
}

type failingSummarizer struct {
	calls int
}

func (s *failingSummarizer) Summarize(ctx context.Context, query string, results []searcher.Result) (*summarizer.Summary, error) {
	s.calls++
	return nil, errors.New("quota exceeded")
}

func TestSearcherOpens(t *testing.T) {
	boom := errors.New("backend down")
	inner := &countingSearcher{err: boom}

	s := breaker.NewSearcher("bing", inner, breaker.Config{MaxFailures: 2, Timeout: time.Hour})

	for range 2 {
		_, err := s.Search(context.Background(), "rust", nil)
		require.ErrorIs(t, err, boom)
	}

	require.Equal(t, gobreaker.StateOpen, s.State())

	_, err := s.Search(context.Background(), "rust", nil)
	require.ErrorIs(t, err, breaker.ErrOpen)
	require.Equal(t, 2, inner.calls)
}

func TestSearcherIgnoresCancellation(t *testing.T) {
	inner := &countingSearcher{err: context.Canceled}

	s := breaker.NewSearcher("brave", inner, breaker.Config{MaxFailures: 2, Timeout: time.Hour})

	for range 5 {
		_, err := s.Search(context.Background(), "rust", nil)
		require.ErrorIs(t, err, context.Canceled)
	}

	require.Equal(t, gobreaker.StateClosed, s.State())

	inner.err = nil

	results, err := s.Search(context.Background(), "rust", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 6, inner.calls)
}

func TestSearcherCountsTimeouts(t *testing.T) {
	inner := &countingSearcher{err: context.DeadlineExceeded}

	s := breaker.NewSearcher("bing", inner, breaker.Config{MaxFailures: 2, Timeout: time.Hour})

	for range 2 {
		s.Search(context.Background(), "rust", nil)
	}

	require.Equal(t, gobreaker.StateOpen, s.State())
}

func TestSearcherPassesThrough(t *testing.T) {
	inner := &countingSearcher{}

	s := breaker.NewSearcher("google", inner, breaker.Config{})

	results, err := s.Search(context.Background(), "rust", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, gobreaker.StateClosed, s.State())
}

func TestSummarizerOpens(t *testing.T) {
	inner := &failingSummarizer{}

	s := breaker.NewSummarizer("gemini", inner, breaker.Config{MaxFailures: 1, Timeout: time.Hour})

	_, err := s.Summarize(context.Background(), "rust", nil)
	require.Error(t, err)

	_, err = s.Summarize(context.Background(), "rust", nil)

	var serr *summarizer.SummaryError
	require.ErrorAs(t, err, &serr)
	require.ErrorIs(t, err, breaker.ErrOpen)
	require.Equal(t, 1, inner.calls)
}
