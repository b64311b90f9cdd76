package remote

import (
	"net/http"
)

type Option func(*Client)

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithToken sends token as bearer and apikey header.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}
