package brave

type searchResponse struct {
	Query struct {
		Original string `json:"original"`
	} `json:"query"`

	Web struct {
		Results []webResult `json:"results"`
	} `json:"web"`
}

type webResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type errorResponse struct {
	Error struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"error"`
}
