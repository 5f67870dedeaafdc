package logs

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FanOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "aish.log")
	var terminal bytes.Buffer

	logger, closeFn := New(Options{FilePath: path, Terminal: &terminal})
	logger.Info("model request", "model", "gpt-4")
	logger.Warn("unknown tool requested", "tool", "fs_delete")
	logger.Debug("hidden")
	require.NoError(t, closeFn())

	assert.NotContains(t, terminal.String(), "model request", "terminal shows warnings only")
	assert.Contains(t, terminal.String(), "unknown tool requested")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "model request", rec["msg"])
	assert.Equal(t, "gpt-4", rec["model"])
	assert.NotEmpty(t, rec["session"])
}

func TestNew_Debug(t *testing.T) {
	var terminal bytes.Buffer

	logger, _ := New(Options{Terminal: &terminal, Debug: true})
	logger.Debug("executing tool", "tool", "execute_shell")

	assert.Contains(t, terminal.String(), "executing tool")
}

func TestNew_AppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aish.log")

	for i := 0; i < 2; i++ {
		logger, closeFn := New(Options{FilePath: path})
		logger.Info("run")
		require.NoError(t, closeFn())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), `"msg":"run"`))
}

func TestNew_UnwritableFileFallsBackToTerminal(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	var terminal bytes.Buffer

	logger, closeFn := New(Options{FilePath: filepath.Join(blocker, "aish.log"), Terminal: &terminal})
	logger.Warn("still logged")

	assert.NoError(t, closeFn())
	assert.Contains(t, terminal.String(), "open log file")
	assert.Contains(t, terminal.String(), "still logged")
}

func TestNew_NoHandlers(t *testing.T) {
	logger, closeFn := New(Options{})

	assert.NotPanics(t, func() { logger.Error("dropped") })
	assert.NoError(t, closeFn())
}
