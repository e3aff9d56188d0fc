package owned

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	// ErrEmpty indicates a handle whose ownership was moved away.
	ErrEmpty = errors.New("handle is empty: ownership was moved away")
	// ErrReleased indicates a handle that was already released.
	ErrReleased = errors.New("handle already released")
)

// HandleError wraps a failed handle operation with its context.
type HandleError struct {
	Label string
	Op    string
	Cause error
	Stack []byte
}

func (e *HandleError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Label, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *HandleError) Unwrap() error {
	return e.Cause
}

func newHandleError(label, op string, cause error) *HandleError {
	return &HandleError{
		Label: label,
		Op:    op,
		Cause: cause,
		Stack: debug.Stack(),
	}
}
