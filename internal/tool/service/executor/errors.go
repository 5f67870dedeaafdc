package executor

import (
	"fmt"
)

// SpawnError is returned when the shell process cannot be started.
type SpawnError struct {
	Command string
	Cause   error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %q: %v", e.Command, e.Cause)
}
func (e *SpawnError) Unwrap() error { return e.Cause }

// CommandError represents failures after the process started (pipe setup, wait).
type CommandError struct {
	Cmd   string
	Cause error
	Stage string // "pipe", "wait"
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed at %s: %v", e.Cmd, e.Stage, e.Cause)
}
func (e *CommandError) Unwrap() error { return e.Cause }
