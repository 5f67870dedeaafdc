package shell

import "context"

// commandRunner runs a command line through the platform shell.
type commandRunner interface {
	Run(ctx context.Context, command string) (string, error)
}
