package fs

import (
	"errors"
	"fmt"
)

// OpError records a failed filesystem primitive together with the path it acted on.
type OpError struct {
	Op    string // "read", "write", "mkdir", "list"
	Path  string
	Cause error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Cause)
}
func (e *OpError) Unwrap() error { return e.Cause }

type TempFileError struct {
	Dir   string
	Cause error
}

func (e *TempFileError) Error() string {
	return fmt.Sprintf("failed to create temp file in %s: %v", e.Dir, e.Cause)
}
func (e *TempFileError) Unwrap() error { return e.Cause }

type RenameError struct {
	Old   string
	New   string
	Cause error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("failed to rename %s to %s: %v", e.Old, e.New, e.Cause)
}
func (e *RenameError) Unwrap() error { return e.Cause }

var (
	// ErrNotText is returned when a file read for the model is not valid UTF-8.
	ErrNotText = errors.New("file is not valid UTF-8 text")
)
