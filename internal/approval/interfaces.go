package approval

import "context"

// whitelistChecker reports whether a shell command matches the configured whitelist.
type whitelistChecker interface {
	IsWhitelisted(command string) bool
}

// prompter asks the user to pick one of options and returns the chosen option.
type prompter interface {
	Select(ctx context.Context, prompt string, options []string) (string, error)
}

// notifier writes one-line messages to the operator.
type notifier interface {
	Success(msg string)
	Info(msg string)
}
