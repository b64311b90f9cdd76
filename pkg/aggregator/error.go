package aggregator

import (
	"errors"
)

var (
	ErrInvalidQuery = errors.New("query must not be empty")
	ErrNoProviders  = errors.New("no search providers configured")
)

// AggregationError reports that no corpus could be produced at all.
// Failures of single providers never surface as AggregationError.
type AggregationError struct {
	Err error
}

func (e *AggregationError) Error() string {
	return "aggregation failed: " + e.Err.Error()
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}
