package helper

import (
	"errors"
	"fmt"
	"strings"
)

// Error wraps an original error with the trace of steps it passed through
type Error struct {
	Original error
	Trace    []string
}

// Error returns the original message followed by the step trace
func (e *Error) Error() string {
	return fmt.Sprintf("%v | trace: %s", e.Original, strings.Join(e.Trace, " <- "))
}

// Unwrap returns the original error
func (e *Error) Unwrap() error {
	return e.Original
}

// NewError wraps err with a step description.
// Wrapping an *Error again appends the step to its trace instead of nesting.
func NewError(step string, err error) error {
	if err == nil {
		err = errors.New("unknown error")
	}

	var traced *Error
	if errors.As(err, &traced) {
		return &Error{
			Original: traced.Original,
			Trace:    append(append([]string{}, traced.Trace...), step),
		}
	}

	return &Error{
		Original: err,
		Trace:    []string{step},
	}
}
