package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	if !slices.Contains(Providers, c.LLM.Provider) {
		errs = append(errs, fmt.Sprintf("llm.provider must be one of %s", strings.Join(Providers, ", ")))
	}
	if c.LLM.Provider != ProviderGemini && c.LLM.APIURL == "" {
		errs = append(errs, "llm.api_url must not be empty")
	}
	if c.LLM.Model == "" {
		errs = append(errs, "llm.model must not be empty")
	}
	if c.LLM.MaxTokens < 1 {
		errs = append(errs, "llm.max_tokens must be >= 1")
	}

	for _, ext := range c.Security.BlockedExtensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Sprintf("security.blocked_extensions entry %q must start with a dot", ext))
		}
	}

	if c.Agent.MaxIterations < 1 {
		errs = append(errs, "agent.max_iterations must be >= 1")
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}

	return nil
}

// ValidationError lists every problem found by Validate.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: %s", strings.Join(e.Problems, "; "))
}
