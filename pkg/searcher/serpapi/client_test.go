package serpapi

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adrianliechti/prism/pkg/engine"
	"github.com/adrianliechti/prism/pkg/searcher"

	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	c, err := New(engine.Google, "serp-test", WithLocation("Zurich, Switzerland"))
	require.NoError(t, err)

	var captured map[string]string

	c.search = func(parameter map[string]string, token string) (map[string]any, error) {
		captured = parameter

		return map[string]any{
			"organic_results": []any{
				map[string]any{"title": "Ownership", "link": "https://doc.rust-lang.org/ownership", "snippet": "Memory rules."},
				map[string]any{"title": "", "link": "https://example.com/untitled"},
				"garbage",
				map[string]any{"title": "Borrowing", "link": "https://doc.rust-lang.org/borrowing"},
			},
		}, nil
	}

	limit := 5

	results, err := c.Search(context.Background(), "rust ownership", &searcher.SearchOptions{Limit: &limit})
	require.NoError(t, err)

	require.Equal(t, "rust ownership", captured["q"])
	require.Equal(t, "5", captured["num"])
	require.Equal(t, "Zurich, Switzerland", captured["location"])

	require.Len(t, results, 2)
	require.Equal(t, "Ownership", results[0].Title)
	require.Equal(t, "Memory rules.", results[0].Snippet)
	require.Equal(t, engine.Google, results[1].Source)
}

func TestSearchBingParameters(t *testing.T) {
	c, err := New(engine.Bing, "serp-test")
	require.NoError(t, err)

	limit := 4
	parameter := c.parameters("go", &searcher.SearchOptions{Limit: &limit})

	require.Equal(t, "4", parameter["count"])
	require.NotContains(t, parameter, "google_domain")
}

func TestSearchAPIError(t *testing.T) {
	c, err := New(engine.Bing, "serp-test")
	require.NoError(t, err)

	c.search = func(parameter map[string]string, token string) (map[string]any, error) {
		return map[string]any{"error": "Invalid API key."}, nil
	}

	_, err = c.Search(context.Background(), "go", nil)
	require.EqualError(t, err, "Invalid API key.")

	c.search = func(parameter map[string]string, token string) (map[string]any, error) {
		return nil, errors.New("connection refused")
	}

	_, err = c.Search(context.Background(), "go", nil)
	require.EqualError(t, err, "connection refused")
}

func TestSearchCancelled(t *testing.T) {
	c, err := New(engine.Google, "serp-test")
	require.NoError(t, err)

	c.search = func(parameter map[string]string, token string) (map[string]any, error) {
		time.Sleep(time.Second)
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = c.Search(ctx, "go", nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewUnsupportedEngine(t *testing.T) {
	_, err := New(engine.DuckDuckGo, "serp-test")
	require.Error(t, err)

	_, err = New(engine.Google, "")
	require.Error(t, err)
}
