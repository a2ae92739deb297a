package fetch

import "fmt"

// Error describes a failed fetch.
type Error struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Outcome is what every remote-resource operation returns. Value may be
// meaningful even when Err is set (for example a placeholder text), so the
// caller picks whether to degrade to Value or abort on Err.
type Outcome[T any] struct {
	Value T
	Err   error
}

// OK reports whether the operation succeeded.
func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

// Succeeded wraps a successful value.
func Succeeded[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// Failed wraps an error together with the value to fall back to.
func Failed[T any](fallback T, err error) Outcome[T] {
	return Outcome[T]{Value: fallback, Err: err}
}
