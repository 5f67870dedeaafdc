package config

import (
	"errors"
	"fmt"
)

var (
	ErrAPIKeyMissing = errors.New("API_KEY not found in tokens.env")
	ErrEnvFileParse  = errors.New("malformed env file line")
)

// UnknownKeyError is returned by Get and Set for keys that do not name a setting.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown config key: %s", e.Key)
}

// InvalidValueError is returned by Set when the value cannot be stored under key.
type InvalidValueError struct {
	Key   string
	Value string
	Cause error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %v", e.Value, e.Key, e.Cause)
}
func (e *InvalidValueError) Unwrap() error { return e.Cause }

// FileError records a failed read or write of one of the files under the config directory.
type FileError struct {
	Op    string
	Path  string
	Cause error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Cause)
}
func (e *FileError) Unwrap() error { return e.Cause }
