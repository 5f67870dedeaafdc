package toolmanager

import (
	"errors"
	"fmt"
)

// ErrRejected is returned when the user declines a proposed operation.
// The loop ends the turn quietly on it.
var ErrRejected = errors.New("operation rejected by user")

// ArgumentError is returned when a tool call's arguments cannot be decoded
// or are missing required fields.
type ArgumentError struct {
	Tool  string
	Cause error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for tool %s: %v", e.Tool, e.Cause)
}

func (e *ArgumentError) Unwrap() error {
	return e.Cause
}
