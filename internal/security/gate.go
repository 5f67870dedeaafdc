package security

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/Cyclone1070/aish/internal/config"
	"github.com/Cyclone1070/aish/internal/tool"
)

type compiledPattern struct {
	regex   *regexp.Regexp
	pattern string
}

// Gate decides whether a path or operation may be touched by a tool.
// It holds no mutable state after New and is safe to share.
type Gate struct {
	allowAbsolute     bool
	allowConfigAccess bool
	blockedExtensions []string
	permissions       config.OperationPermissions
	configDir         string
	canonicalConfig   string
	ignore            *ignoreMatcher
	whitelist         []compiledPattern
}

// New builds a Gate from the loaded configuration.
// Invalid whitelist patterns are logged and skipped, not fatal.
func New(cfg *config.Config, configDir string, ignorePatterns []string, logger *slog.Logger) *Gate {
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		panic("logger is required")
	}

	absConfigDir, canonicalConfig := configDir, configDir
	if configDir != "" {
		if abs, err := filepath.Abs(configDir); err == nil {
			absConfigDir = abs
		}
		if c, err := canonicalPath(configDir); err == nil {
			canonicalConfig = c
		}
	}

	whitelist := make([]compiledPattern, 0, len(cfg.Whitelist))
	for _, p := range cfg.Whitelist {
		re, err := regexp.Compile(p)
		if err != nil {
			logger.Warn("invalid whitelist pattern skipped", "pattern", p, "error", err)
			continue
		}
		whitelist = append(whitelist, compiledPattern{regex: re, pattern: p})
	}

	return &Gate{
		allowAbsolute:     cfg.Security.AllowAbsolutePaths,
		allowConfigAccess: cfg.Security.AllowConfigPathAccess,
		blockedExtensions: slices.Clone(cfg.Security.BlockedExtensions),
		permissions:       cfg.Security.AllowedOperations,
		configDir:         absConfigDir,
		canonicalConfig:   canonicalConfig,
		ignore:            newIgnoreMatcher(ignorePatterns, logger),
		whitelist:         whitelist,
	}
}

// ValidatePath checks, in order: absolute paths, the config directory,
// blocked extensions and ignore patterns. The first failure is returned.
func (g *Gate) ValidatePath(path string) error {
	if !g.allowAbsolute && filepath.IsAbs(path) {
		return &Error{Reason: ErrAbsolutePath}
	}

	if !g.allowConfigAccess && g.underConfigDir(path) {
		return &Error{Reason: ErrConfigDirAccess}
	}

	if ext := filepath.Ext(path); ext != "" && slices.Contains(g.blockedExtensions, ext) {
		return &Error{Reason: ErrBlockedExtension, Detail: ext}
	}

	if pattern, ok := g.ignore.match(path); ok {
		return &Error{Reason: ErrIgnoredPath, Detail: pattern}
	}

	return nil
}

// ValidateOperation checks kind against the permission table.
func (g *Gate) ValidateOperation(kind tool.Kind) error {
	if !g.permissions.Allowed(kind) {
		return &Error{Reason: ErrOperationDenied, Detail: string(kind)}
	}
	return nil
}

// IsWhitelisted reports whether any whitelist pattern matches the command.
func (g *Gate) IsWhitelisted(command string) bool {
	for _, cp := range g.whitelist {
		if cp.regex.MatchString(command) {
			return true
		}
	}
	return false
}

// underConfigDir resolves path against the working directory and compares
// it component-wise with the config directory, first lexically and then with
// symlinks resolved so a link into the config directory is caught too.
func (g *Gate) underConfigDir(path string) bool {
	if g.configDir == "" {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	if within(g.configDir, abs) {
		return true
	}
	canonical, err := canonicalPath(abs)
	if err != nil {
		return false
	}
	return within(g.canonicalConfig, canonical)
}
