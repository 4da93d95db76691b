package puzzle

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every error caused by a malformed request.
// Those errors point at a bug in whoever built the request.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidMoveError reports which field of a request was out of range.
type InvalidMoveError struct {
	Field string
	Value any
	Limit int
}

func (e *InvalidMoveError) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("%s: %s %v out of range [0, %d)", ErrInvalidArgument, e.Field, e.Value, e.Limit)
	}
	return fmt.Sprintf("%s: bad %s %v", ErrInvalidArgument, e.Field, e.Value)
}

func (e *InvalidMoveError) Unwrap() error {
	return ErrInvalidArgument
}
