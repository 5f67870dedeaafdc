package security

import (
	"errors"
	"fmt"
)

var (
	ErrAbsolutePath     = errors.New("Absolute paths are not allowed")
	ErrConfigDirAccess  = errors.New("Access to configuration directory is not allowed")
	ErrBlockedExtension = errors.New("blocked file extension")
	ErrIgnoredPath      = errors.New("path matches ignore pattern")
	ErrOperationDenied  = errors.New("operation not allowed")
)

// Error is a security denial. Reason is one of the sentinels above; Detail
// names the offending extension, pattern or operation when there is one.
type Error struct {
	Reason error
	Detail string
}

func (e *Error) Error() string {
	switch e.Reason {
	case ErrBlockedExtension:
		return fmt.Sprintf("File extension %s is blocked", e.Detail)
	case ErrIgnoredPath:
		return fmt.Sprintf("Path matches ignore pattern: %s", e.Detail)
	case ErrOperationDenied:
		return fmt.Sprintf("Operation %s is not allowed", e.Detail)
	default:
		return e.Reason.Error()
	}
}

func (e *Error) Unwrap() error { return e.Reason }
