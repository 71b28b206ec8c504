package images

import "errors"

// terminalError marks a failure that retrying cannot fix.
type terminalError struct {
	err error
}

func (e *terminalError) Error() string { return e.err.Error() }
func (e *terminalError) Unwrap() error { return e.err }

func terminal(err error) error { return &terminalError{err: err} }

func isTerminal(err error) bool {
	var te *terminalError
	return errors.As(err, &te)
}

// withRetry runs fn up to attempts times, stopping early on success or on an
// error the retryable predicate rejects. The last error is returned.
func withRetry(attempts int, retryable func(error) bool, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
	}
	return err
}
