package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/Cyclone1070/aish/internal/provider"
	"github.com/Cyclone1070/aish/internal/tool"
	"github.com/Cyclone1070/aish/internal/workflow/toolmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	generateFunc func(ctx context.Context, messages []provider.Message, tools []tool.Declaration) (*provider.Message, error)
	requests     [][]provider.Message
}

func (m *mockProvider) Generate(ctx context.Context, messages []provider.Message, tools []tool.Declaration) (*provider.Message, error) {
	m.requests = append(m.requests, messages)
	return m.generateFunc(ctx, messages, tools)
}

type mockToolManager struct {
	declarations []tool.Declaration
	executeFunc  func(ctx context.Context, tc provider.ToolCall) (provider.Message, error)
	executed     []string
}

func (m *mockToolManager) Declarations() []tool.Declaration {
	return m.declarations
}

func (m *mockToolManager) Execute(ctx context.Context, tc provider.ToolCall) (provider.Message, error) {
	m.executed = append(m.executed, tc.ID)
	if m.executeFunc != nil {
		return m.executeFunc(ctx, tc)
	}
	return provider.Message{Role: provider.RoleTool, ToolCallID: tc.ID, Content: "ok"}, nil
}

type recordingReporter struct {
	info     []string
	markdown []string
}

func (r *recordingReporter) Info(msg string)      { r.info = append(r.info, msg) }
func (r *recordingReporter) Markdown(text string) { r.markdown = append(r.markdown, text) }

func staticPrompt(s string) func() string { return func() string { return s } }

func newTestLoop(p llmProvider, tm toolManager, r *recordingReporter, maxIterations int) *Loop {
	return NewLoop(p, tm, staticPrompt("system"), r, slog.New(slog.DiscardHandler), maxIterations)
}

// scripted returns the responses in order, one per call.
func scripted(responses ...*provider.Message) *mockProvider {
	i := 0
	return &mockProvider{generateFunc: func(context.Context, []provider.Message, []tool.Declaration) (*provider.Message, error) {
		if i >= len(responses) {
			return nil, fmt.Errorf("unexpected call %d", i)
		}
		r := responses[i]
		i++
		return r, nil
	}}
}

func callsTo(ids ...string) *provider.Message {
	msg := &provider.Message{Role: provider.RoleAssistant}
	for _, id := range ids {
		msg.ToolCalls = append(msg.ToolCalls, provider.ToolCall{
			ID:       id,
			Type:     provider.ToolCallType,
			Function: provider.FunctionCall{Name: "execute_shell", Arguments: `{"command":"ls"}`},
		})
	}
	return msg
}

func TestRun_SingleTurn_TextOnly(t *testing.T) {
	mp := scripted(&provider.Message{Role: provider.RoleAssistant, Content: "Hello!"})
	r := &recordingReporter{}
	l := newTestLoop(mp, &mockToolManager{}, r, 5)
	l.AddUserMessage("Hi")

	err := l.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"→ LLM is Thinking...", "→ LLM Response:"}, r.info)
	assert.Equal(t, []string{"Hello!"}, r.markdown)
	assert.Equal(t, []provider.Message{
		{Role: provider.RoleUser, Content: "Hi"},
		{Role: provider.RoleAssistant, Content: "Hello!"},
	}, l.Messages())
}

func TestRun_SystemPromptPrependedAndRefreshed(t *testing.T) {
	mp := scripted(callsTo("c1"), &provider.Message{Role: provider.RoleAssistant, Content: "done"})
	calls := 0
	prompt := func() string {
		calls++
		return fmt.Sprintf("prompt %d", calls)
	}
	l := NewLoop(mp, &mockToolManager{}, prompt, &recordingReporter{}, slog.New(slog.DiscardHandler), 5)
	l.AddUserMessage("go")

	require.NoError(t, l.Run(context.Background()))

	require.Len(t, mp.requests, 2)
	assert.Equal(t, provider.Message{Role: provider.RoleSystem, Content: "prompt 1"}, mp.requests[0][0])
	assert.Equal(t, provider.Message{Role: provider.RoleSystem, Content: "prompt 2"}, mp.requests[1][0])
	for _, m := range l.Messages() {
		assert.NotEqual(t, provider.RoleSystem, m.Role, "system prompt is not stored in the transcript")
	}
}

func TestRun_EmptySystemPromptOmitted(t *testing.T) {
	mp := scripted(&provider.Message{Role: provider.RoleAssistant, Content: "ok"})
	l := NewLoop(mp, &mockToolManager{}, staticPrompt(""), &recordingReporter{}, slog.New(slog.DiscardHandler), 5)
	l.AddUserMessage("hi")

	require.NoError(t, l.Run(context.Background()))

	assert.Equal(t, provider.RoleUser, mp.requests[0][0].Role)
}

func TestRun_ToolCallsInOrder(t *testing.T) {
	mp := scripted(callsTo("c1", "c2", "c3"), &provider.Message{Role: provider.RoleAssistant, Content: "It's sunny!"})
	mtm := &mockToolManager{executeFunc: func(_ context.Context, tc provider.ToolCall) (provider.Message, error) {
		return provider.Message{Role: provider.RoleTool, ToolCallID: tc.ID, Content: "result " + tc.ID}, nil
	}}
	r := &recordingReporter{}
	l := newTestLoop(mp, mtm, r, 5)
	l.AddUserMessage("Weather?")

	err := l.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2", "c3"}, mtm.executed)

	msgs := l.Messages()
	require.Len(t, msgs, 6)
	assert.Equal(t, provider.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "result c1", msgs[2].Content)
	assert.Equal(t, "result c2", msgs[3].Content)
	assert.Equal(t, "result c3", msgs[4].Content)
	assert.Equal(t, "It's sunny!", msgs[5].Content)

	// Second request carries the assistant message and all tool results.
	require.Len(t, mp.requests, 2)
	assert.Len(t, mp.requests[1], 1+5)
	assert.Equal(t, []string{"→ LLM is Thinking...", "→ LLM is Thinking...", "→ LLM Response:"}, r.info)
}

func TestRun_ContentAlongsideToolCallsIsShown(t *testing.T) {
	first := callsTo("c1")
	first.Content = "Let me check."
	mp := scripted(first, &provider.Message{Role: provider.RoleAssistant, Content: "Done."})
	r := &recordingReporter{}
	l := newTestLoop(mp, &mockToolManager{}, r, 5)
	l.AddUserMessage("check")

	require.NoError(t, l.Run(context.Background()))

	assert.Equal(t, []string{"Let me check.", "Done."}, r.markdown)
}

func TestRun_EmptyResponseEndsTurn(t *testing.T) {
	mp := scripted(&provider.Message{Role: provider.RoleAssistant})
	r := &recordingReporter{}
	l := newTestLoop(mp, &mockToolManager{}, r, 5)
	l.AddUserMessage("hi")

	require.NoError(t, l.Run(context.Background()))

	assert.Empty(t, r.markdown)
	assert.Len(t, l.Messages(), 2)
}

func TestRun_RejectionEndsTurnQuietly(t *testing.T) {
	mp := scripted(callsTo("c1", "c2", "c3"))
	mtm := &mockToolManager{executeFunc: func(_ context.Context, tc provider.ToolCall) (provider.Message, error) {
		if tc.ID == "c2" {
			return provider.Message{}, toolmanager.ErrRejected
		}
		return provider.Message{Role: provider.RoleTool, ToolCallID: tc.ID, Content: "ok"}, nil
	}}
	l := newTestLoop(mp, mtm, &recordingReporter{}, 5)
	l.AddUserMessage("go")

	err := l.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, mtm.executed, "calls after a rejection are not executed")
	assert.Len(t, mp.requests, 1)

	msgs := l.Messages()
	require.Len(t, msgs, 5)
	assert.Equal(t, "c1", msgs[2].ToolCallID)
	assert.Equal(t, "c2", msgs[3].ToolCallID)
	assert.Equal(t, rejectedResult, msgs[3].Content)
	assert.Equal(t, "c3", msgs[4].ToolCallID)
	assert.Equal(t, notExecutedResult, msgs[4].Content)
}

func TestRun_ToolError_ReturnsError(t *testing.T) {
	boom := errors.New("Absolute paths are not allowed")
	mp := scripted(callsTo("c1"))
	mtm := &mockToolManager{executeFunc: func(context.Context, provider.ToolCall) (provider.Message, error) {
		return provider.Message{}, boom
	}}
	l := newTestLoop(mp, mtm, &recordingReporter{}, 5)
	l.AddUserMessage("hi")

	err := l.Run(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "tools.Execute")
	msgs := l.Messages()
	assert.Equal(t, provider.RoleTool, msgs[len(msgs)-1].Role)
}

func TestRun_ProviderError_ReturnsError(t *testing.T) {
	apiErr := &provider.APIError{StatusCode: 401, Status: "401 Unauthorized"}
	mp := &mockProvider{generateFunc: func(context.Context, []provider.Message, []tool.Declaration) (*provider.Message, error) {
		return nil, apiErr
	}}
	l := newTestLoop(mp, &mockToolManager{}, &recordingReporter{}, 5)
	l.AddUserMessage("hi")

	err := l.Run(context.Background())

	var got *provider.APIError
	require.ErrorAs(t, err, &got)
	assert.Contains(t, err.Error(), "provider.Generate")
	assert.Len(t, l.Messages(), 1)
}

func TestRun_MaxIterationsExceeded_ReturnsError(t *testing.T) {
	mp := &mockProvider{generateFunc: func(context.Context, []provider.Message, []tool.Declaration) (*provider.Message, error) {
		return callsTo("loop"), nil
	}}
	mtm := &mockToolManager{}
	l := newTestLoop(mp, mtm, &recordingReporter{}, 3)
	l.AddUserMessage("go")

	err := l.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max iterations (3) reached")
	assert.Len(t, mtm.executed, 3)
}

func TestRun_ContextCancelledBeforeStart(t *testing.T) {
	mp := scripted(&provider.Message{Role: provider.RoleAssistant, Content: "ok"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := newTestLoop(mp, &mockToolManager{}, &recordingReporter{}, 5)
	l.AddUserMessage("hi")

	err := l.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, mp.requests)
}

func TestRun_CancellationDuringToolDoesNotInterruptIt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mp := scripted(callsTo("c1", "c2"), &provider.Message{Role: provider.RoleAssistant, Content: "unreachable"})
	var toolCtxErrs []error
	mtm := &mockToolManager{executeFunc: func(toolCtx context.Context, tc provider.ToolCall) (provider.Message, error) {
		cancel()
		toolCtxErrs = append(toolCtxErrs, toolCtx.Err())
		return provider.Message{Role: provider.RoleTool, ToolCallID: tc.ID, Content: "ok"}, nil
	}}
	l := newTestLoop(mp, mtm, &recordingReporter{}, 5)
	l.AddUserMessage("go")

	err := l.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"c1"}, mtm.executed, "the running tool finishes, the next one never starts")
	assert.Equal(t, []error{nil}, toolCtxErrs)
	assert.Len(t, mp.requests, 1, "no new model call after cancellation")

	msgs := l.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, "ok", msgs[2].Content)
	assert.Equal(t, provider.Message{Role: provider.RoleTool, ToolCallID: "c2", Name: "execute_shell", Content: interruptedResult}, msgs[3])
}

func TestRun_CancellationDuringModelCallRunsNoTools(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var requestCtxErr error
	mp := &mockProvider{generateFunc: func(reqCtx context.Context, _ []provider.Message, _ []tool.Declaration) (*provider.Message, error) {
		cancel()
		requestCtxErr = reqCtx.Err()
		return callsTo("rm1", "rm2"), nil
	}}
	mtm := &mockToolManager{}
	l := newTestLoop(mp, mtm, &recordingReporter{}, 5)
	l.AddUserMessage("clean up")

	err := l.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, requestCtxErr, "the model request itself is not cut short")
	assert.Empty(t, mtm.executed)

	msgs := l.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, provider.RoleAssistant, msgs[1].Role)
	for i, id := range []string{"rm1", "rm2"} {
		assert.Equal(t, id, msgs[2+i].ToolCallID)
		assert.Equal(t, interruptedResult, msgs[2+i].Content)
	}
}

func TestRun_ReentrantAccumulatesTranscript(t *testing.T) {
	mp := scripted(
		&provider.Message{Role: provider.RoleAssistant, Content: "first"},
		&provider.Message{Role: provider.RoleAssistant, Content: "second"},
	)
	l := newTestLoop(mp, &mockToolManager{}, &recordingReporter{}, 5)

	l.AddUserMessage("one")
	require.NoError(t, l.Run(context.Background()))
	l.AddUserMessage("two")
	require.NoError(t, l.Run(context.Background()))

	require.Len(t, mp.requests, 2)
	assert.Len(t, mp.requests[1], 1+3)
	assert.Len(t, l.Messages(), 4)
}

func TestMessages_ReturnsCopy(t *testing.T) {
	l := newTestLoop(scripted(), &mockToolManager{}, &recordingReporter{}, 5)
	l.AddUserMessage("hi")

	msgs := l.Messages()
	msgs[0].Content = "changed"

	assert.Equal(t, "hi", l.Messages()[0].Content)
}

func TestNewLoop_PanicsOnNilDeps(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	p := scripted()
	tm := &mockToolManager{}
	r := &recordingReporter{}
	assert.Panics(t, func() { NewLoop(nil, tm, staticPrompt(""), r, logger, 1) })
	assert.Panics(t, func() { NewLoop(p, nil, staticPrompt(""), r, logger, 1) })
	assert.Panics(t, func() { NewLoop(p, tm, nil, r, logger, 1) })
	assert.Panics(t, func() { NewLoop(p, tm, staticPrompt(""), nil, logger, 1) })
	assert.Panics(t, func() { NewLoop(p, tm, staticPrompt(""), r, nil, 1) })
}
