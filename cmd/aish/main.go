// Package main provides the aish command-line interface.
// It sends a prompt to an LLM that can run shell commands and read and write
// files in the current directory, each action approved by the user.
package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/Cyclone1070/aish/internal/ui"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], newApp(os.Stdin, os.Stdout, os.Stderr)))
}

// run executes the command line and maps any error to exit code 1.
func run(ctx context.Context, args []string, app *App) int {
	root := newRootCmd(app)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	switch {
	case errors.Is(err, errNotInitialized):
		app.console.Warn(err.Error())
	case errors.Is(err, errUsage):
	default:
		app.console.PrintError(err)
	}
	return 1
}

// newApp wires the real terminal.
func newApp(in io.Reader, out, errOut io.Writer) *App {
	return &App{
		in:          in,
		out:         out,
		errOut:      errOut,
		console:     ui.NewConsole(out, errOut),
		prompter:    ui.NewPrompter(in, out),
		configDir:   defaultConfigDir,
		newProvider: createProvider,
		interrupts:  notifyInterrupt,
	}
}
