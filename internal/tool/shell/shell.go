package shell

import (
	"context"

	"github.com/Cyclone1070/aish/internal/tool"
)

// ShellTool executes a command line on the local machine.
// NOTE: This tool does NOT enforce policy - the caller is responsible for approval and security checks.
type ShellTool struct {
	runner commandRunner
}

// NewShellTool creates a new ShellTool with injected dependencies.
func NewShellTool(runner commandRunner) *ShellTool {
	if runner == nil {
		panic("runner is required")
	}
	return &ShellTool{runner: runner}
}

func (t *ShellTool) Name() tool.Name {
	return tool.NameExecuteShell
}

func (t *ShellTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        string(tool.NameExecuteShell),
		Description: "Execute a shell command and return its output",
		Parameters: tool.StringParams(
			[]string{"command"},
			map[string]string{"command": "The shell command to execute"},
		),
	}
}

func (t *ShellTool) Input() any {
	return &ShellRequest{}
}

// Execute runs the command and returns its combined output.
func (t *ShellTool) Execute(ctx context.Context, input any) (string, error) {
	req := input.(*ShellRequest)
	if err := req.Validate(); err != nil {
		return "", err
	}
	return t.runner.Run(ctx, *req.Command)
}
