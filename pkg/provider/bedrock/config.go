package bedrock

type Config struct {
	url    string
	model  string
	region string
}

type Option func(*Config)

func WithRegion(region string) Option {
	return func(c *Config) {
		c.region = region
	}
}

// WithURL overrides the Bedrock runtime endpoint.
func WithURL(url string) Option {
	return func(c *Config) {
		c.url = url
	}
}
