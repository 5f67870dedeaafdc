package toolmanager

import (
	"context"

	"github.com/Cyclone1070/aish/internal/tool"
)

// toolImpl defines the interface for individual tools.
type toolImpl interface {
	// Name returns the tool's identifier.
	Name() tool.Name

	// Declaration returns the tool's schema for the LLM.
	Declaration() tool.Declaration

	// Input returns a pointer to the input struct (e.g., &ReadFileRequest{}).
	// The request must implement validator and describer; path tools also
	// implement pathTarget.
	Input() any

	// Execute runs the tool with the decoded input and returns the text sent back to the model.
	Execute(ctx context.Context, input any) (string, error)
}

// validator reports missing or malformed arguments.
type validator interface {
	Validate() error
}

// describer renders the request for the approval prompt.
type describer interface {
	Description() string
}

// pathTarget is implemented by requests that touch a filesystem path.
type pathTarget interface {
	TargetPath() string
}

// securityGate checks operations and paths before execution.
type securityGate interface {
	ValidateOperation(kind tool.Kind) error
	ValidatePath(path string) error
}

// approvalPolicy asks whether a proposed operation may run.
type approvalPolicy interface {
	ShouldExecute(ctx context.Context, kind tool.Kind, description string) (bool, error)
}

// notifier writes one-line status messages to the operator.
type notifier interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}
