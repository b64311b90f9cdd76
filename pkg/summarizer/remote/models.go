package remote

import (
	"github.com/adrianliechti/prism/pkg/searcher"
)

type summaryRequest struct {
	Query string `json:"query,omitempty"`

	SearchResults []searcher.Result `json:"searchResults"`
}

type summaryResponse struct {
	Answer string `json:"answer"`

	// older backends answer with "summary"
	Summary string `json:"summary"`

	Error string `json:"error"`
}
