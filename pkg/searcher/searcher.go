package searcher

import (
	"context"

	"github.com/adrianliechti/prism/pkg/engine"

	"github.com/google/uuid"
)

type Provider interface {
	Search(ctx context.Context, query string, options *SearchOptions) ([]Result, error)
}

type SearchOptions struct {
	Limit *int
}

type Result struct {
	ID string `json:"id"`

	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`

	Source engine.Engine `json:"source"`
}

// NewID returns a fresh result identifier.
func NewID() string {
	return uuid.NewString()
}

// Limit caps results to the limit carried by options, if any.
func Limit(results []Result, options *SearchOptions) []Result {
	if options == nil || options.Limit == nil || *options.Limit <= 0 {
		return results
	}

	if len(results) > *options.Limit {
		return results[:*options.Limit]
	}

	return results
}
