package serpapi

type Option func(*Client)

// WithLocation sets the geographic location searches originate from.
func WithLocation(location string) Option {
	return func(c *Client) {
		c.location = location
	}
}

func WithLanguage(language string) Option {
	return func(c *Client) {
		c.language = language
	}
}
