package config

import "github.com/Cyclone1070/aish/internal/tool"

// Provider names accepted in llm.provider.
const (
	ProviderOpenAI     = "OpenAI"
	ProviderOpenRouter = "OpenRouter"
	ProviderGemini     = "Gemini"
	ProviderCustom     = "Custom"
)

// Providers lists the provider choices offered by init, in display order.
var Providers = []string{ProviderOpenAI, ProviderOpenRouter, ProviderGemini, ProviderCustom}

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via config.toml.
// NOTE: Values in the config file override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	LLM       LLMConfig      `toml:"llm" mapstructure:"llm"`
	Security  SecurityConfig `toml:"security" mapstructure:"security"`
	Whitelist []string       `toml:"whitelist" mapstructure:"whitelist"` // Regexes; matching shell commands are auto-approved with --accept-all
	Agent     AgentConfig    `toml:"agent" mapstructure:"agent"`
}

type LLMConfig struct {
	Provider  string `toml:"provider" mapstructure:"provider"`
	APIURL    string `toml:"api_url" mapstructure:"api_url"`
	Model     string `toml:"model" mapstructure:"model"`
	MaxTokens int    `toml:"max_tokens" mapstructure:"max_tokens"` // Default: 4096
	Proxy     string `toml:"proxy" mapstructure:"proxy"`           // Optional, e.g. socks5://127.0.0.1:1080
}

type SecurityConfig struct {
	AllowAbsolutePaths    bool                 `toml:"allow_absolute_paths" mapstructure:"allow_absolute_paths"`
	AllowConfigPathAccess bool                 `toml:"allow_config_path_access" mapstructure:"allow_config_path_access"`
	BlockedExtensions     []string             `toml:"blocked_extensions" mapstructure:"blocked_extensions"` // With leading dot, case-sensitive
	AllowedOperations     OperationPermissions `toml:"allowed_operations" mapstructure:"allowed_operations"`
}

// OperationPermissions is the permission table consulted for every tool call.
type OperationPermissions struct {
	MakeDir   bool `toml:"fs.makedir" mapstructure:"fs.makedir"`
	MakeFile  bool `toml:"fs.makefile" mapstructure:"fs.makefile"`
	WriteFile bool `toml:"fs.writefile" mapstructure:"fs.writefile"`
	ReadFile  bool `toml:"fs.readfile" mapstructure:"fs.readfile"`
	ListDir   bool `toml:"fs.listdir" mapstructure:"fs.listdir"`
	Shell     bool `toml:"shell" mapstructure:"shell"`
}

// Allowed reports whether kind is permitted. Unknown kinds are never permitted.
func (p OperationPermissions) Allowed(kind tool.Kind) bool {
	switch kind {
	case tool.KindMakeDir:
		return p.MakeDir
	case tool.KindMakeFile:
		return p.MakeFile
	case tool.KindWriteFile:
		return p.WriteFile
	case tool.KindReadFile:
		return p.ReadFile
	case tool.KindListDir:
		return p.ListDir
	case tool.KindShell:
		return p.Shell
	default:
		return false
	}
}

type AgentConfig struct {
	MaxIterations int `toml:"max_iterations" mapstructure:"max_iterations"` // Default: 50
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  ProviderOpenAI,
			APIURL:    "https://api.openai.com/v1",
			Model:     "gpt-4",
			MaxTokens: 4096,
		},
		Security: SecurityConfig{
			AllowAbsolutePaths:    false,
			AllowConfigPathAccess: false,
			BlockedExtensions:     []string{".env"},
			AllowedOperations: OperationPermissions{
				MakeDir:   true,
				MakeFile:  true,
				WriteFile: true,
				ReadFile:  true,
				ListDir:   true,
				Shell:     true,
			},
		},
		Whitelist: []string{},
		Agent: AgentConfig{
			MaxIterations: 50,
		},
	}
}

// ProviderDefaults returns the api_url and model preset for a provider.
// Custom has no preset and returns empty strings.
func ProviderDefaults(provider string) (apiURL, model string) {
	switch provider {
	case ProviderOpenAI:
		return "https://api.openai.com/v1", "gpt-4"
	case ProviderOpenRouter:
		return "https://openrouter.ai/api/v1", "openai/gpt-4"
	case ProviderGemini:
		return "https://generativelanguage.googleapis.com", "gemini-2.5-flash"
	default:
		return "", ""
	}
}
