package mock

import (
	"time"
)

type Option func(*Client)

// WithDelay sets the simulated network latency.
func WithDelay(delay time.Duration) Option {
	return func(c *Client) {
		c.delay = delay
	}
}

// WithError makes every search fail with err.
func WithError(err error) Option {
	return func(c *Client) {
		c.err = err
	}
}
