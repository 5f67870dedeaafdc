package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/Cyclone1070/aish/internal/approval"
	"github.com/Cyclone1070/aish/internal/logs"
	"github.com/Cyclone1070/aish/internal/security"
	"github.com/Cyclone1070/aish/internal/tool/directory"
	"github.com/Cyclone1070/aish/internal/tool/file"
	"github.com/Cyclone1070/aish/internal/tool/service/executor"
	"github.com/Cyclone1070/aish/internal/tool/service/fs"
	"github.com/Cyclone1070/aish/internal/tool/shell"
	"github.com/Cyclone1070/aish/internal/ui"
	"github.com/Cyclone1070/aish/internal/workflow/loop"
	"github.com/Cyclone1070/aish/internal/workflow/toolmanager"
	"github.com/Cyclone1070/aish/internal/workspace"
)

// newAgent loads the configuration and wires the agent loop. The returned
// func closes the log file.
func (a *App) newAgent(ctx context.Context, opts rootOptions) (*loop.Loop, func() error, error) {
	mgr, err := a.manager()
	if err != nil {
		return nil, nil, err
	}
	if !mgr.IsInitialized() {
		return nil, nil, errNotInitialized
	}

	cfg, err := mgr.Load()
	if err != nil {
		return nil, nil, err
	}
	apiKey, err := mgr.LoadAPIKey()
	if err != nil {
		return nil, nil, err
	}
	patterns, err := mgr.LoadIgnorePatterns()
	if err != nil {
		return nil, nil, err
	}
	template, err := mgr.LoadSystemPrompt()
	if err != nil {
		return nil, nil, err
	}

	logger, closeLog := logs.New(logs.Options{
		FilePath: mgr.LogPath(),
		Terminal: a.errOut,
		Debug:    opts.debug,
	})
	logger.Debug("configuration loaded", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model, "accept_all", opts.acceptAll)

	llm, err := a.newProvider(ctx, cfg, apiKey, logger)
	if err != nil {
		_ = closeLog()
		return nil, nil, err
	}

	gate := security.New(cfg, mgr.Dir(), patterns, logger)

	mode := approval.ModeInteractive
	if opts.acceptAll {
		mode = approval.ModeAcceptAll
	}
	policy := approval.New(mode, gate, a.prompter, a.console)

	fileSystem := fs.NewOSFileSystem()
	runner := executor.NewShellRunner(a.in, a.out, a.errOut, logger)
	tools := toolmanager.NewToolManager(gate, policy, a.console, logger,
		shell.NewShellTool(runner),
		file.NewReadFileTool(fileSystem),
		file.NewWriteFileTool(fileSystem),
		directory.NewMakeDirTool(fileSystem),
		directory.NewListDirTool(fileSystem),
	)

	systemPrompt := func() string {
		cwd, flags, err := workspace.Current()
		if err != nil {
			logger.Warn("workspace detection failed", "error", err)
			cwd = "unknown"
		}
		return workspace.Render(template, cwd, flags)
	}

	return loop.NewLoop(llm, tools, systemPrompt, a.console, logger, cfg.Agent.MaxIterations), closeLog, nil
}

// runPrompt answers a single prompt and exits.
func (a *App) runPrompt(ctx context.Context, opts rootOptions, prompt string) error {
	agent, closeLog, err := a.newAgent(ctx, opts)
	if err != nil {
		return err
	}
	defer closeLog()

	agent.AddUserMessage(prompt)
	return agent.Run(ctx)
}

// runInteractive keeps one conversation open across prompts until the user
// types quit or exit, or cancels the prompt. Ctrl+C is caught only once the
// REPL starts: it stops the current turn before its next model request or
// tool call and then ends the session.
func (a *App) runInteractive(ctx context.Context, opts rootOptions, initial string) error {
	agent, closeLog, err := a.newAgent(ctx, opts)
	if err != nil {
		return err
	}
	defer closeLog()

	a.console.Info("→ Interactive mode started. Type 'quit' or 'exit' to end the session.")

	if initial != "" {
		agent.AddUserMessage(initial)
		if err := agent.Run(ctx); err != nil {
			a.console.PrintError(err)
		}
	}

	ctx, stop := a.interrupts(ctx)
	defer stop()

	for ctx.Err() == nil {
		line, err := a.prompter.Input(ctx, "aish>", "")
		if err != nil {
			if errors.Is(err, ui.ErrPromptCancelled) || ctx.Err() != nil {
				break
			}
			return fmt.Errorf("failed to read prompt: %w", err)
		}

		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			a.console.Info("→ Goodbye!")
			return nil
		}

		agent.AddUserMessage(line)
		if err := agent.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.console.PrintError(err)
		}
	}

	a.console.Info("→ Interactive mode ended.")
	return nil
}

func notifyInterrupt(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}
