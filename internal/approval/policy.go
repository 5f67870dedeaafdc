package approval

import (
	"context"
	"fmt"

	"github.com/Cyclone1070/aish/internal/tool"
)

// Mode selects how proposed operations are approved. It is fixed at construction.
type Mode int

const (
	// ModeInteractive asks the user for every operation.
	ModeInteractive Mode = iota
	// ModeAcceptAll approves every operation without asking.
	ModeAcceptAll
)

const (
	OptionAccept = "Accept"
	OptionReject = "Reject"
)

// InputError is returned when the approval prompt could not be answered.
type InputError struct {
	Cause error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("failed to read approval: %v", e.Cause)
}
func (e *InputError) Unwrap() error { return e.Cause }

// Policy decides whether a proposed operation runs.
type Policy struct {
	mode      Mode
	whitelist whitelistChecker
	prompter  prompter
	notifier  notifier
}

// New creates a Policy. The whitelist is only consulted in ModeAcceptAll,
// where it changes the approval notice but not the outcome.
func New(mode Mode, whitelist whitelistChecker, prompter prompter, notifier notifier) *Policy {
	if whitelist == nil {
		panic("whitelist is required")
	}
	if prompter == nil {
		panic("prompter is required")
	}
	if notifier == nil {
		panic("notifier is required")
	}
	return &Policy{
		mode:      mode,
		whitelist: whitelist,
		prompter:  prompter,
		notifier:  notifier,
	}
}

// Mode returns the approval mode.
func (p *Policy) Mode() Mode {
	return p.mode
}

// ShouldExecute reports whether the operation of the given kind, described
// by description, may run. For shell operations description is the command.
func (p *Policy) ShouldExecute(ctx context.Context, kind tool.Kind, description string) (bool, error) {
	if p.mode == ModeAcceptAll {
		if kind == tool.KindShell && p.whitelist.IsWhitelisted(description) {
			p.notifier.Success("+ Auto-approved (whitelisted): " + description)
		} else {
			p.notifier.Success("+ Auto-approved: " + description)
		}
		return true, nil
	}

	p.notifier.Info(fmt.Sprintf("→ Proposed %s: %s", kind, description))
	choice, err := p.prompter.Select(ctx, "Execute this operation?", []string{OptionAccept, OptionReject})
	if err != nil {
		return false, &InputError{Cause: err}
	}
	return choice == OptionAccept, nil
}
