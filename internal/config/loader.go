package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DirName is the directory name under the user's home.
	DirName = ".aish"
	// HomeEnv overrides the config directory location.
	HomeEnv = "AISH_HOME"
	// APIKeyEnv holds the API key, in the environment or in tokens.env.
	APIKeyEnv = "API_KEY"

	ConfigFile       = "config.toml"
	TokensFile       = "tokens.env"
	IgnoreFile       = ".aishignore"
	SystemPromptFile = "system_prompt.txt"
	LogFile          = "aish.log"
)

//go:embed system_prompt.txt
var defaultSystemPrompt string

// DefaultSystemPrompt returns the built-in system prompt template.
func DefaultSystemPrompt() string {
	return defaultSystemPrompt
}

// DefaultDir returns $AISH_HOME if set, otherwise ~/.aish.
func DefaultDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DirName), nil
}

// Manager reads and writes the files under the config directory.
type Manager struct {
	dir string
}

// NewManager creates a Manager rooted at dir.
func NewManager(dir string) *Manager {
	if dir == "" {
		panic("dir is required")
	}
	return &Manager{dir: dir}
}

func (m *Manager) Dir() string              { return m.dir }
func (m *Manager) ConfigPath() string       { return filepath.Join(m.dir, ConfigFile) }
func (m *Manager) TokensPath() string       { return filepath.Join(m.dir, TokensFile) }
func (m *Manager) IgnorePath() string       { return filepath.Join(m.dir, IgnoreFile) }
func (m *Manager) SystemPromptPath() string { return filepath.Join(m.dir, SystemPromptFile) }
func (m *Manager) LogPath() string          { return filepath.Join(m.dir, LogFile) }

// IsInitialized reports whether both config.toml and tokens.env exist.
func (m *Manager) IsInitialized() bool {
	return exists(m.ConfigPath()) && exists(m.TokensPath())
}

// Load reads config.toml and merges it with defaults. File values override defaults.
// Returns default config if the file doesn't exist.
// Returns error only for parse errors, permission issues, or validation failures.
//
// NOTE: This implementation decodes TOML keys directly over the default configuration.
// This allows explicit zero values (e.g., 0, false, "") in the config file to override defaults.
func (m *Manager) Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(m.ConfigPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, &FileError{Op: "read", Path: m.ConfigPath(), Cause: err}
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, &FileError{Op: "parse", Path: m.ConfigPath(), Cause: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to config.toml, creating the directory if needed.
func (m *Manager) Save(cfg *Config) error {
	if err := os.MkdirAll(m.dir, 0o700); err != nil {
		return &FileError{Op: "create", Path: m.dir, Cause: err}
	}
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return &FileError{Op: "encode", Path: m.ConfigPath(), Cause: err}
	}
	if err := os.WriteFile(m.ConfigPath(), []byte(buf.String()), 0o600); err != nil {
		return &FileError{Op: "write", Path: m.ConfigPath(), Cause: err}
	}
	return nil
}

// SetValue loads the config, sets one dotted key and saves it back.
func (m *Manager) SetValue(key, value string) error {
	cfg, err := m.Load()
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	return m.Save(cfg)
}

// LoadAPIKey returns the API key. The API_KEY environment variable takes
// precedence over tokens.env.
func (m *Manager) LoadAPIKey() (string, error) {
	if key := os.Getenv(APIKeyEnv); key != "" {
		return key, nil
	}
	data, err := os.ReadFile(m.TokensPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrAPIKeyMissing
		}
		return "", &FileError{Op: "read", Path: m.TokensPath(), Cause: err}
	}
	env, err := ParseEnv(m.TokensPath(), string(data))
	if err != nil {
		return "", err
	}
	key := env[APIKeyEnv]
	if key == "" {
		return "", ErrAPIKeyMissing
	}
	return key, nil
}

// SaveAPIKey writes tokens.env with owner-only permissions.
func (m *Manager) SaveAPIKey(key string) error {
	if err := os.MkdirAll(m.dir, 0o700); err != nil {
		return &FileError{Op: "create", Path: m.dir, Cause: err}
	}
	if err := os.WriteFile(m.TokensPath(), []byte(APIKeyEnv+"="+key+"\n"), 0o600); err != nil {
		return &FileError{Op: "write", Path: m.TokensPath(), Cause: err}
	}
	return nil
}

// LoadIgnorePatterns returns the lines of .aishignore, skipping blanks and
// comments. A missing file yields no patterns.
func (m *Manager) LoadIgnorePatterns() ([]string, error) {
	data, err := os.ReadFile(m.IgnorePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &FileError{Op: "read", Path: m.IgnorePath(), Cause: err}
	}
	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}

// LoadSystemPrompt returns the system prompt template, falling back to the
// built-in one when system_prompt.txt does not exist.
func (m *Manager) LoadSystemPrompt() (string, error) {
	data, err := os.ReadFile(m.SystemPromptPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultSystemPrompt, nil
		}
		return "", &FileError{Op: "read", Path: m.SystemPromptPath(), Cause: err}
	}
	return string(data), nil
}

// RegenSystemPrompt overwrites system_prompt.txt with the built-in template.
func (m *Manager) RegenSystemPrompt() error {
	if err := os.MkdirAll(m.dir, 0o700); err != nil {
		return &FileError{Op: "create", Path: m.dir, Cause: err}
	}
	if err := os.WriteFile(m.SystemPromptPath(), []byte(defaultSystemPrompt), 0o644); err != nil {
		return &FileError{Op: "write", Path: m.SystemPromptPath(), Cause: err}
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
