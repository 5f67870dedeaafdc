package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Cyclone1070/aish/internal/config"
	"github.com/Cyclone1070/aish/internal/provider"
	"github.com/Cyclone1070/aish/internal/provider/gemini"
	"github.com/Cyclone1070/aish/internal/provider/openai"
	"github.com/Cyclone1070/aish/internal/tool"
	"github.com/Cyclone1070/aish/internal/ui"
)

const requestTimeout = 5 * time.Minute

var (
	errNotInitialized = errors.New("Configuration not found. Please run: aish init")
	errUsage          = errors.New("no prompt given")
)

// llmClient is what the CLI needs from a provider: generation for the loop
// and a cheap request for the init wizard.
type llmClient interface {
	Generate(ctx context.Context, messages []provider.Message, decls []tool.Declaration) (*provider.Message, error)
	TestAPIKey(ctx context.Context) error
}

type providerFactory func(ctx context.Context, cfg *config.Config, apiKey string, logger *slog.Logger) (llmClient, error)

// prompter asks the user questions. ui.Prompter in production.
type prompter interface {
	Select(ctx context.Context, prompt string, options []string) (string, error)
	Input(ctx context.Context, prompt, defaultValue string) (string, error)
	Secret(ctx context.Context, prompt string) (string, error)
}

// App holds the dependencies shared by every command.
type App struct {
	in          io.Reader
	out         io.Writer
	errOut      io.Writer
	console     *ui.Console
	prompter    prompter
	configDir   func() (string, error)
	newProvider providerFactory
	interrupts  func(context.Context) (context.Context, context.CancelFunc)
}

func defaultConfigDir() (string, error) {
	return config.DefaultDir()
}

func (a *App) manager() (*config.Manager, error) {
	dir, err := a.configDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config directory: %w", err)
	}
	return config.NewManager(dir), nil
}

// createProvider builds the transport named by llm.provider. Gemini uses
// the genai SDK; every other provider speaks the OpenAI chat completions API.
func createProvider(ctx context.Context, cfg *config.Config, apiKey string, logger *slog.Logger) (llmClient, error) {
	httpClient, err := openai.NewHTTPClient(cfg.LLM.Proxy, requestTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to configure proxy: %w", err)
	}

	if cfg.LLM.Provider == config.ProviderGemini {
		return newGeminiProvider(ctx, cfg, apiKey, httpClient)
	}
	return openai.New(httpClient, cfg.LLM.APIURL, apiKey, cfg.LLM.Model, cfg.LLM.MaxTokens, logger), nil
}

func newGeminiProvider(ctx context.Context, cfg *config.Config, apiKey string, httpClient *http.Client) (llmClient, error) {
	client, err := gemini.NewRealGeminiClient(ctx, apiKey, cfg.LLM.APIURL, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return gemini.New(client, cfg.LLM.Model, cfg.LLM.MaxTokens), nil
}
