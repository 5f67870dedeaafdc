package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cyclone1070/aish/internal/config"
)

const (
	answerYes = "Yes"
	answerNo  = "No"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runInit(cmd.Context())
		},
	}
}

// runInit walks the user through provider, credentials and security
// settings, then writes config.toml, tokens.env and system_prompt.txt.
func (a *App) runInit(ctx context.Context) error {
	mgr, err := a.manager()
	if err != nil {
		return err
	}

	a.console.Box("aish setup")

	cfg := config.DefaultConfig()

	providerName, err := a.prompter.Select(ctx, "provider:", config.Providers)
	if err != nil {
		return err
	}
	cfg.LLM.Provider = providerName
	cfg.LLM.APIURL, cfg.LLM.Model = config.ProviderDefaults(providerName)

	if providerName == config.ProviderCustom {
		if cfg.LLM.APIURL, err = a.prompter.Input(ctx, "api_url:", ""); err != nil {
			return err
		}
		if cfg.LLM.Model, err = a.prompter.Input(ctx, "model:", ""); err != nil {
			return err
		}
	}

	apiKey, err := a.prompter.Secret(ctx, "api_key:")
	if err != nil {
		return err
	}

	test, err := a.prompter.Select(ctx, "test_api_key:", []string{answerYes, answerNo})
	if err != nil {
		return err
	}
	if test == answerYes {
		a.testAPIKey(ctx, cfg, apiKey)
	}

	maxTokens, err := a.prompter.Input(ctx, "max_tokens:", strconv.Itoa(cfg.LLM.MaxTokens))
	if err != nil {
		return err
	}
	if cfg.LLM.MaxTokens, err = strconv.Atoi(strings.TrimSpace(maxTokens)); err != nil {
		return &config.InvalidValueError{Key: "llm.max_tokens", Value: maxTokens, Cause: err}
	}

	if cfg.Security.AllowAbsolutePaths, err = a.confirm(ctx, "allow_absolute_paths:"); err != nil {
		return err
	}
	if cfg.Security.AllowConfigPathAccess, err = a.confirm(ctx, "allow_config_access:"); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := mgr.Save(cfg); err != nil {
		return err
	}
	if err := mgr.SaveAPIKey(apiKey); err != nil {
		return err
	}
	if err := mgr.RegenSystemPrompt(); err != nil {
		return err
	}

	a.console.Success("✓ Configuration saved successfully!")
	a.console.Muted("  " + mgr.ConfigPath())
	a.console.Println("You can now use aish with: aish <your prompt>")
	return nil
}

// testAPIKey sends one small request. A failure is reported but does not
// stop the wizard.
func (a *App) testAPIKey(ctx context.Context, cfg *config.Config, apiKey string) {
	a.console.Info("test_api_key: Testing...")
	llm, err := a.newProvider(ctx, cfg, apiKey, slog.New(slog.DiscardHandler))
	if err == nil {
		err = llm.TestAPIKey(ctx)
	}
	if err != nil {
		a.console.Error(fmt.Sprintf("✗ Error: %s", firstLine(err.Error())))
		return
	}
	a.console.Success("✓ Valid")
}

// confirm asks a No/Yes question with No preselected.
func (a *App) confirm(ctx context.Context, prompt string) (bool, error) {
	answer, err := a.prompter.Select(ctx, prompt, []string{answerNo, answerYes})
	if err != nil {
		return false, err
	}
	return answer == answerYes, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
