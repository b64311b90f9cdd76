package tavily

type searchRequest struct {
	Query string `json:"query"`

	SearchDepth string `json:"search_depth,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

type searchResult struct {
	Query string `json:"query"`

	Results []result `json:"results"`
}

type result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type errorResult struct {
	Detail struct {
		Error string `json:"error"`
	} `json:"detail"`
}
