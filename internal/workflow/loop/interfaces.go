package loop

import (
	"context"

	"github.com/Cyclone1070/aish/internal/provider"
	"github.com/Cyclone1070/aish/internal/tool"
)

// llmProvider communicates with an LLM.
type llmProvider interface {
	// Generate sends messages to the LLM and returns its response.
	Generate(ctx context.Context, messages []provider.Message, tools []tool.Declaration) (*provider.Message, error)
}

// toolManager manages tool storage and execution.
type toolManager interface {
	// Declarations returns all tool schemas for the LLM.
	Declarations() []tool.Declaration

	// Execute runs a tool call and returns the result as a provider.Message.
	Execute(ctx context.Context, tc provider.ToolCall) (provider.Message, error)
}

// reporter shows progress and answers to the operator.
type reporter interface {
	Info(msg string)
	Markdown(text string)
}
