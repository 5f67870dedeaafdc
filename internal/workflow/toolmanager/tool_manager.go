package toolmanager

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Cyclone1070/aish/internal/provider"
	"github.com/Cyclone1070/aish/internal/tool"
)

// ToolManager resolves tool calls from the model, runs them through approval
// and the security gate, and executes them.
type ToolManager struct {
	registry map[tool.Name]toolImpl
	gate     securityGate
	policy   approvalPolicy
	notifier notifier
	logger   *slog.Logger
}

func NewToolManager(gate securityGate, policy approvalPolicy, notifier notifier, logger *slog.Logger, tools ...toolImpl) *ToolManager {
	if gate == nil {
		panic("gate is required")
	}
	if policy == nil {
		panic("policy is required")
	}
	if notifier == nil {
		panic("notifier is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	tm := &ToolManager{
		registry: make(map[tool.Name]toolImpl),
		gate:     gate,
		policy:   policy,
		notifier: notifier,
		logger:   logger,
	}
	for _, t := range tools {
		tm.Register(t)
	}
	return tm
}

func (m *ToolManager) Register(t toolImpl) {
	m.registry[t.Name()] = t
}

func (m *ToolManager) Declarations() []tool.Declaration {
	decls := make([]tool.Declaration, 0, len(m.registry))
	for _, t := range m.registry {
		decls = append(decls, t.Declaration())
	}
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].Name < decls[j].Name
	})
	return decls
}

// Execute runs one tool call and returns the tool message for the transcript.
//
// An unknown tool name is not an error: the model gets a tool message telling
// it so. Argument errors, security denials and tool failures are returned as
// errors and end the turn. ErrRejected is returned when the user declines.
func (m *ToolManager) Execute(ctx context.Context, tc provider.ToolCall) (provider.Message, error) {
	t, ok := m.lookup(tc.Function.Name)
	if !ok {
		m.notifier.Warn(fmt.Sprintf("! Model requested unknown tool %q", tc.Function.Name))
		m.logger.Warn("unknown tool requested", "tool", tc.Function.Name, "id", tc.ID)

		declsJSON, _ := json.MarshalIndent(m.Declarations(), "", "  ")
		return provider.Message{
			Role:       provider.RoleTool,
			ToolCallID: tc.ID,
			Name:       tc.Function.Name,
			Content:    fmt.Sprintf("Error: tool %q does not exist.\n\nAvailable tools:\n%s", tc.Function.Name, declsJSON),
		}, nil
	}

	req := t.Input()
	if err := decodeArguments(tc.Function.Arguments, req); err != nil {
		return provider.Message{}, &ArgumentError{Tool: tc.Function.Name, Cause: err}
	}
	if v, ok := req.(validator); ok {
		if err := v.Validate(); err != nil {
			return provider.Message{}, &ArgumentError{Tool: tc.Function.Name, Cause: err}
		}
	}

	description := tc.Function.Name
	if d, ok := req.(describer); ok {
		description = d.Description()
	}

	kind := t.Name().Kind()
	approved, err := m.policy.ShouldExecute(ctx, kind, description)
	if err != nil {
		return provider.Message{}, err
	}
	if !approved {
		if kind == tool.KindShell {
			m.notifier.Error("× Command rejected")
		} else {
			m.notifier.Error("× Operation rejected")
		}
		m.logger.Info("tool call rejected", "tool", tc.Function.Name, "id", tc.ID)
		return provider.Message{}, ErrRejected
	}

	if err := m.gate.ValidateOperation(kind); err != nil {
		return provider.Message{}, err
	}
	if p, ok := req.(pathTarget); ok {
		if err := m.gate.ValidatePath(p.TargetPath()); err != nil {
			return provider.Message{}, err
		}
	}

	m.notifier.Info("> Executing...")
	m.logger.Debug("executing tool", "tool", tc.Function.Name, "id", tc.ID)

	content, err := t.Execute(ctx, req)
	if err != nil {
		return provider.Message{}, fmt.Errorf("%s: %w", tc.Function.Name, err)
	}

	return provider.Message{
		Role:       provider.RoleTool,
		ToolCallID: tc.ID,
		Name:       tc.Function.Name,
		Content:    content,
	}, nil
}

// lookup resolves a raw name from the model against the closed tool set and the registry.
func (m *ToolManager) lookup(raw string) (toolImpl, bool) {
	name, ok := tool.ParseName(raw)
	if !ok {
		return nil, false
	}
	t, ok := m.registry[name]
	return t, ok
}

// decodeArguments treats an empty argument string as an empty object.
func decodeArguments(raw string, req any) error {
	if strings.TrimSpace(raw) == "" {
		raw = "{}"
	}
	return json.Unmarshal([]byte(raw), req)
}
