package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Cyclone1070/aish/internal/provider"
	"github.com/Cyclone1070/aish/internal/workflow/toolmanager"
)

const (
	rejectedResult    = "Error: operation rejected by user"
	notExecutedResult = "Error: not executed because an earlier tool call in this turn failed"
	interruptedResult = "Error: not executed because the user interrupted the turn"
)

// Loop drives one conversation: it alternates model calls and tool calls
// until the model answers in plain text.
type Loop struct {
	provider      llmProvider
	tools         toolManager
	systemPrompt  func() string
	reporter      reporter
	logger        *slog.Logger
	maxIterations int
	messages      []provider.Message
}

// NewLoop creates a Loop. systemPrompt is called before every model request;
// an empty result sends no system message.
func NewLoop(provider llmProvider, tools toolManager, systemPrompt func() string, reporter reporter, logger *slog.Logger, maxIterations int) *Loop {
	if provider == nil {
		panic("provider is required")
	}
	if tools == nil {
		panic("tools is required")
	}
	if systemPrompt == nil {
		panic("systemPrompt is required")
	}
	if reporter == nil {
		panic("reporter is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Loop{
		provider:      provider,
		tools:         tools,
		systemPrompt:  systemPrompt,
		reporter:      reporter,
		logger:        logger,
		maxIterations: maxIterations,
	}
}

// AddUserMessage appends a user turn to the transcript.
func (l *Loop) AddUserMessage(text string) {
	l.messages = append(l.messages, provider.Message{Role: provider.RoleUser, Content: text})
}

// Messages returns a copy of the transcript.
func (l *Loop) Messages() []provider.Message {
	out := make([]provider.Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Run processes the transcript until the model stops requesting tools.
//
// ctx is checked before every model request and every tool call: a request
// or tool execution that has started runs to completion, but nothing new
// starts once ctx is done. A rejected tool call ends the turn without error.
func (l *Loop) Run(ctx context.Context) error {
	for i := 0; i < l.maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.reporter.Info("→ LLM is Thinking...")

		resp, err := l.provider.Generate(context.WithoutCancel(ctx), l.request(), l.tools.Declarations())
		if err != nil {
			l.logger.Error("model request failed", "error", err)
			return fmt.Errorf("provider.Generate: %w", err)
		}

		l.messages = append(l.messages, *resp)

		if resp.Content != "" {
			l.reporter.Info("→ LLM Response:")
			l.reporter.Markdown(resp.Content)
		}

		if len(resp.ToolCalls) == 0 {
			return nil
		}

		for j, tc := range resp.ToolCalls {
			if err := ctx.Err(); err != nil {
				for _, pending := range resp.ToolCalls[j:] {
					l.messages = append(l.messages, toolResult(pending, interruptedResult))
				}
				l.logger.Info("turn interrupted", "pending_tool_calls", len(resp.ToolCalls)-j)
				return err
			}
			toolResp, err := l.tools.Execute(context.WithoutCancel(ctx), tc)
			if errors.Is(err, toolmanager.ErrRejected) {
				l.closeToolCalls(tc, resp.ToolCalls[j+1:], rejectedResult)
				return nil
			}
			if err != nil {
				l.closeToolCalls(tc, resp.ToolCalls[j+1:], "Error: "+err.Error())
				return fmt.Errorf("tools.Execute (%s): %w", tc.Function.Name, err)
			}
			l.messages = append(l.messages, toolResp)
		}
	}

	l.logger.Warn("max iterations reached", "max", l.maxIterations)
	return fmt.Errorf("max iterations (%d) reached", l.maxIterations)
}

// request prepends a freshly rendered system message to the transcript.
func (l *Loop) request() []provider.Message {
	prompt := l.systemPrompt()
	if prompt == "" {
		return l.Messages()
	}
	msgs := make([]provider.Message, 0, len(l.messages)+1)
	msgs = append(msgs, provider.Message{Role: provider.RoleSystem, Content: prompt})
	return append(msgs, l.messages...)
}

// closeToolCalls answers a failed call and every call after it so the
// transcript stays valid for the next turn.
func (l *Loop) closeToolCalls(failed provider.ToolCall, rest []provider.ToolCall, result string) {
	l.messages = append(l.messages, toolResult(failed, result))
	for _, tc := range rest {
		l.messages = append(l.messages, toolResult(tc, notExecutedResult))
	}
}

func toolResult(tc provider.ToolCall, content string) provider.Message {
	return provider.Message{
		Role:       provider.RoleTool,
		ToolCallID: tc.ID,
		Name:       tc.Function.Name,
		Content:    content,
	}
}
