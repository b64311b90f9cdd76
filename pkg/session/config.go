package session

import (
	"time"

	"github.com/adrianliechti/prism/pkg/summarizer"
)

type Option func(*Session)

func WithSummarizer(summarizer summarizer.Provider) Option {
	return func(s *Session) {
		s.summarizer = summarizer
	}
}

func WithSummaryTimeout(timeout time.Duration) Option {
	return func(s *Session) {
		s.summaryTimeout = timeout
	}
}

// WithChangeHandler registers a callback invoked with a snapshot after every
// committed state change. It is called while the session is locked and must
// not call back into the session.
func WithChangeHandler(fn func(State)) Option {
	return func(s *Session) {
		s.onChange = fn
	}
}
