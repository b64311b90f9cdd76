package summarizer

import (
	"errors"
)

var ErrEmptyAnswer = errors.New("backend returned an empty answer")

// SummaryError reports that no answer could be generated.
type SummaryError struct {
	Err error
}

func (e *SummaryError) Error() string {
	return "summary failed: " + e.Err.Error()
}

func (e *SummaryError) Unwrap() error {
	return e.Err
}

// Wrap returns err as a *SummaryError, keeping an existing one as is.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	var serr *SummaryError

	if errors.As(err, &serr) {
		return err
	}

	return &SummaryError{Err: err}
}
