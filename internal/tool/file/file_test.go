package file

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFileOps struct {
	ReadFileFunc  func(path string) (string, error)
	WriteFileFunc func(path, content string) error
}

func (m *mockFileOps) ReadFile(path string) (string, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(path)
	}
	return "", nil
}

func (m *mockFileOps) WriteFile(path, content string) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(path, content)
	}
	return nil
}

func strPtr(s string) *string { return &s }

func TestReadFileTool_Execute(t *testing.T) {
	ops := &mockFileOps{ReadFileFunc: func(path string) (string, error) {
		assert.Equal(t, "src/main.go", path)
		return "package main\n", nil
	}}
	rt := NewReadFileTool(ops)

	out, err := rt.Execute(context.Background(), &ReadFileRequest{Path: strPtr("src/main.go")})

	require.NoError(t, err)
	assert.Equal(t, "package main\n", out)
}

func TestReadFileTool_Errors(t *testing.T) {
	t.Run("MissingPath", func(t *testing.T) {
		rt := NewReadFileTool(&mockFileOps{})

		_, err := rt.Execute(context.Background(), &ReadFileRequest{})

		assert.ErrorIs(t, err, ErrPathRequired)
	})

	t.Run("ReadFailure", func(t *testing.T) {
		boom := errors.New("no such file")
		rt := NewReadFileTool(&mockFileOps{ReadFileFunc: func(string) (string, error) { return "", boom }})

		_, err := rt.Execute(context.Background(), &ReadFileRequest{Path: strPtr("x")})

		assert.ErrorIs(t, err, boom)
	})
}

func TestWriteFileTool_Execute(t *testing.T) {
	var gotPath, gotContent string
	ops := &mockFileOps{WriteFileFunc: func(path, content string) error {
		gotPath, gotContent = path, content
		return nil
	}}
	wt := NewWriteFileTool(ops)

	out, err := wt.Execute(context.Background(), &WriteFileRequest{Path: strPtr("a/b.txt"), Content: strPtr("hi")})

	require.NoError(t, err)
	assert.Equal(t, "File written successfully", out)
	assert.Equal(t, "a/b.txt", gotPath)
	assert.Equal(t, "hi", gotContent)
}

func TestWriteFileTool_EmptyContentIsAllowed(t *testing.T) {
	wt := NewWriteFileTool(&mockFileOps{})

	_, err := wt.Execute(context.Background(), &WriteFileRequest{Path: strPtr("a"), Content: strPtr("")})

	assert.NoError(t, err)
}

func TestWriteFileTool_MissingContent(t *testing.T) {
	called := false
	wt := NewWriteFileTool(&mockFileOps{WriteFileFunc: func(string, string) error {
		called = true
		return nil
	}})

	_, err := wt.Execute(context.Background(), &WriteFileRequest{Path: strPtr("a")})

	assert.ErrorIs(t, err, ErrContentRequiredForWrite)
	assert.False(t, called)
}

func TestDescriptions(t *testing.T) {
	assert.Equal(t, "Read file: x.txt", (&ReadFileRequest{Path: strPtr("x.txt")}).Description())
	assert.Equal(t, "Write file: y.txt", (&WriteFileRequest{Path: strPtr("y.txt")}).Description())
	assert.Equal(t, "x.txt", (&ReadFileRequest{Path: strPtr("x.txt")}).TargetPath())
	assert.Equal(t, "", (&WriteFileRequest{}).TargetPath())
}

func TestDeclarations(t *testing.T) {
	rd := NewReadFileTool(&mockFileOps{}).Declaration()
	wd := NewWriteFileTool(&mockFileOps{}).Declaration()

	assert.Equal(t, "fs_readfile", rd.Name)
	assert.Equal(t, []string{"path"}, rd.Parameters.Required)
	assert.Equal(t, "fs_writefile", wd.Name)
	assert.Equal(t, []string{"path", "content"}, wd.Parameters.Required)
}
