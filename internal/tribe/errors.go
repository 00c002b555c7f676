package tribe

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCamp = errors.New("invalid camp parameters")
	ErrInvariant   = errors.New("camp invariant violated")
)

// InvariantError reports shared state that the protocol should have made
// impossible. It always aborts the run.
type InvariantError struct {
	Day int
	Msg string
}

func (e *InvariantError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s on day %d: %s", ErrInvariant.Error(), e.Day, e.Msg)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }

func invariantf(day int, format string, args ...any) error {
	return &InvariantError{Day: day, Msg: fmt.Sprintf(format, args...)}
}
