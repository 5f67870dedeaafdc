package config

import (
	"testing"

	"github.com/Cyclone1070/aish/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Whitelist = []string{"^ls", "^pwd$"}

	tests := []struct {
		key  string
		want string
	}{
		{"llm.model", "gpt-4"},
		{"llm.max_tokens", "4096"},
		{"security.allow_absolute_paths", "false"},
		{"security.blocked_extensions", ".env"},
		{"security.allowed_operations.fs.readfile", "true"},
		{"security.allowed_operations.shell", "true"},
		{"whitelist", "^ls,^pwd$"},
		{"agent.max_iterations", "50"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := cfg.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGet_UnknownOrSectionKey(t *testing.T) {
	cfg := DefaultConfig()

	for _, key := range []string{"llm.nope", "llm", "security.allowed_operations", "", "llm.model.extra"} {
		_, err := cfg.Get(key)
		var unknown *UnknownKeyError
		assert.ErrorAs(t, err, &unknown, key)
	}
}

func TestSet(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Set("llm.max_tokens", "8192"))
	require.NoError(t, cfg.Set("llm.model", "gpt-4o-mini"))
	require.NoError(t, cfg.Set("security.allow_config_path_access", "true"))
	require.NoError(t, cfg.Set("security.allowed_operations.fs.writefile", "false"))
	require.NoError(t, cfg.Set("whitelist", "^ls, ^git status$"))

	assert.Equal(t, 8192, cfg.LLM.MaxTokens)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.True(t, cfg.Security.AllowConfigPathAccess)
	assert.False(t, cfg.Security.AllowedOperations.Allowed(tool.KindWriteFile))
	assert.True(t, cfg.Security.AllowedOperations.Allowed(tool.KindReadFile))
	assert.Equal(t, []string{"^ls", "^git status$"}, cfg.Whitelist)
}

func TestSet_ShorterListReplacesLonger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Security.BlockedExtensions = []string{".env", ".pem", ".key"}

	require.NoError(t, cfg.Set("security.blocked_extensions", ".secret"))

	assert.Equal(t, []string{".secret"}, cfg.Security.BlockedExtensions)
}

func TestSet_Errors(t *testing.T) {
	t.Run("UnknownKey", func(t *testing.T) {
		cfg := DefaultConfig()
		var unknown *UnknownKeyError
		assert.ErrorAs(t, cfg.Set("llm.temperature", "1"), &unknown)
	})

	t.Run("WrongType", func(t *testing.T) {
		cfg := DefaultConfig()
		var invalid *InvalidValueError
		assert.ErrorAs(t, cfg.Set("llm.max_tokens", "lots"), &invalid)
		assert.Equal(t, 4096, cfg.LLM.MaxTokens)
	})

	t.Run("FailsValidationLeavesConfigUntouched", func(t *testing.T) {
		cfg := DefaultConfig()
		err := cfg.Set("llm.max_tokens", "0")

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, 4096, cfg.LLM.MaxTokens)
	})
}

func TestManager_SetValuePersists(t *testing.T) {
	m := NewManager(t.TempDir())
	require.NoError(t, m.Save(DefaultConfig()))

	require.NoError(t, m.SetValue("llm.model", "openai/gpt-4"))

	cfg, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4", cfg.LLM.Model)
}

func TestSettings_SortedWithSections(t *testing.T) {
	settings, err := DefaultConfig().Settings()
	require.NoError(t, err)

	require.NotEmpty(t, settings)
	for i := 1; i < len(settings); i++ {
		assert.Less(t, settings[i-1].Key, settings[i].Key)
	}

	byKey := make(map[string]Setting)
	for _, s := range settings {
		byKey[s.Key] = s
	}
	assert.Equal(t, "llm", byKey["llm.model"].Section)
	assert.Equal(t, "security", byKey["security.allowed_operations.fs.makedir"].Section)
	assert.Equal(t, "", byKey["whitelist"].Section)
	assert.Equal(t, "", byKey["whitelist"].Value)
}

func TestOperationPermissions_UnknownKindDenied(t *testing.T) {
	p := DefaultConfig().Security.AllowedOperations

	assert.False(t, p.Allowed(tool.Kind("fs.delete")))
	for _, k := range tool.Kinds {
		assert.True(t, p.Allowed(k), k)
	}
}
