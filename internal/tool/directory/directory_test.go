package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFS struct {
	MakeDirFunc func(path string) error
	ListDirFunc func(path string) ([]string, error)
}

func (m *mockFS) MakeDir(path string) error {
	if m.MakeDirFunc != nil {
		return m.MakeDirFunc(path)
	}
	return nil
}

func (m *mockFS) ListDir(path string) ([]string, error) {
	if m.ListDirFunc != nil {
		return m.ListDirFunc(path)
	}
	return nil, nil
}

func strPtr(s string) *string { return &s }

func TestMakeDirTool_Execute(t *testing.T) {
	var got string
	mt := NewMakeDirTool(&mockFS{MakeDirFunc: func(path string) error {
		got = path
		return nil
	}})

	out, err := mt.Execute(context.Background(), &MakeDirRequest{Path: strPtr("a/b")})

	require.NoError(t, err)
	assert.Equal(t, "Directory created successfully", out)
	assert.Equal(t, "a/b", got)
}

func TestMakeDirTool_Errors(t *testing.T) {
	mt := NewMakeDirTool(&mockFS{MakeDirFunc: func(string) error { return errors.New("denied") }})

	_, err := mt.Execute(context.Background(), &MakeDirRequest{Path: strPtr("a")})
	assert.EqualError(t, err, "denied")

	_, err = mt.Execute(context.Background(), &MakeDirRequest{})
	assert.ErrorIs(t, err, ErrPathRequired)
}

func TestListDirTool_Execute(t *testing.T) {
	lt := NewListDirTool(&mockFS{ListDirFunc: func(path string) ([]string, error) {
		assert.Equal(t, ".", path)
		return []string{"a.txt", "b", "c.go"}, nil
	}})

	out, err := lt.Execute(context.Background(), &ListDirRequest{Path: strPtr(".")})

	require.NoError(t, err)
	assert.Equal(t, "a.txt\nb\nc.go", out)
}

func TestListDirTool_EmptyDirectory(t *testing.T) {
	lt := NewListDirTool(&mockFS{ListDirFunc: func(string) ([]string, error) { return []string{}, nil }})

	out, err := lt.Execute(context.Background(), &ListDirRequest{Path: strPtr("empty")})

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDirectoryRequests(t *testing.T) {
	assert.Equal(t, "Create directory: out", (&MakeDirRequest{Path: strPtr("out")}).Description())
	assert.Equal(t, "List directory: src", (&ListDirRequest{Path: strPtr("src")}).Description())
	assert.Equal(t, "src", (&ListDirRequest{Path: strPtr("src")}).TargetPath())
	assert.ErrorIs(t, (&ListDirRequest{}).Validate(), ErrPathRequired)
}

func TestDirectoryDeclarations(t *testing.T) {
	assert.Equal(t, "fs_makedir", NewMakeDirTool(&mockFS{}).Declaration().Name)
	assert.Equal(t, "fs_listdir", NewListDirTool(&mockFS{}).Declaration().Name)
}
