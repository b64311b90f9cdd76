package breaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

const (
	defaultMaxFailures uint32        = 5
	defaultTimeout     time.Duration = 30 * time.Second
	defaultInterval    time.Duration = 60 * time.Second
)

var ErrOpen = errors.New("circuit open")

type Config struct {
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures uint32

	// Timeout is how long the circuit stays open before probing again.
	Timeout time.Duration

	// Interval clears failure counts while closed. Zero keeps them until the circuit opens.
	Interval time.Duration
}

func newBreaker[T any](name string, cfg Config) *gobreaker.CircuitBreaker[T] {
	maxFailures := cfg.MaxFailures

	if maxFailures == 0 {
		maxFailures = defaultMaxFailures
	}

	timeout := cfg.Timeout

	if timeout == 0 {
		timeout = defaultTimeout
	}

	interval := cfg.Interval

	if interval == 0 {
		interval = defaultInterval
	}

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    interval,
		Timeout:     timeout,

		IsSuccessful: isSuccessful,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
}

// isSuccessful keeps caller cancellations out of the failure counts.
func isSuccessful(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

func convertError(name string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s: %w: %w", name, ErrOpen, err)
	}

	return err
}
