package searcher

import (
	"errors"

	"github.com/adrianliechti/prism/pkg/engine"
)

var ErrInvalidQuery = errors.New("invalid query")

type ProviderError struct {
	Engine engine.Engine
	Err    error
}

func (e *ProviderError) Error() string {
	return "provider " + e.Engine.String() + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
