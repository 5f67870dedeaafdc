package ui

import (
	"errors"
	"strings"
)

// ErrPromptCancelled is returned when the user leaves a prompt with Ctrl+C or Esc.
var ErrPromptCancelled = errors.New("prompt cancelled")

// ErrNotTerminal is returned when a prompt is requested but stdin is not a terminal.
var ErrNotTerminal = errors.New("input is not a terminal")

// FormatError renders err and its wrapped causes, one per line:
//
//	× Error: request to https://api.openai.com/v1/chat/completions failed
//	  caused by: dial tcp: connection refused
//
// Each line shows only the part of the message its own layer added.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var lines []string
	for cur := err; cur != nil; {
		msg := cur.Error()
		next := errors.Unwrap(cur)
		if next != nil {
			msg = strings.TrimSuffix(msg, ": "+next.Error())
		}
		if len(lines) == 0 {
			lines = append(lines, "× Error: "+msg)
		} else if msg != "" {
			lines = append(lines, "  caused by: "+msg)
		}
		cur = next
	}
	return strings.Join(lines, "\n")
}
