package fs

import (
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"
)

const (
	defaultFileMode os.FileMode = 0o644
	defaultDirMode  os.FileMode = 0o755
)

// OSFileSystem implements the file and directory tools on the local filesystem.
// Paths are used as given; relative paths resolve against the process working directory.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// ReadFile returns the full text of a file.
func (f *OSFileSystem) ReadFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", &OpError{Op: "read", Path: path, Cause: err}
	}
	if !utf8.Valid(content) {
		return "", &OpError{Op: "read", Path: path, Cause: ErrNotText}
	}
	return string(content), nil
}

// WriteFile replaces the file content, creating missing parent directories.
// The write goes through a temp file in the target directory and a rename,
// so a crash mid-write leaves either the old or the new content.
func (f *OSFileSystem) WriteFile(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, defaultDirMode); err != nil {
		return &OpError{Op: "write", Path: path, Cause: err}
	}

	perm := defaultFileMode
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmpFile, err := os.CreateTemp(dir, ".aish-tmp-*")
	if err != nil {
		return &TempFileError{Dir: dir, Cause: err}
	}
	tmpPath := tmpFile.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.WriteString(content); err != nil {
		return &OpError{Op: "write", Path: tmpPath, Cause: err}
	}
	if err := tmpFile.Sync(); err != nil {
		return &OpError{Op: "write", Path: tmpPath, Cause: err}
	}
	if err := tmpFile.Close(); err != nil {
		return &OpError{Op: "write", Path: tmpPath, Cause: err}
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return &OpError{Op: "write", Path: tmpPath, Cause: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &RenameError{Old: tmpPath, New: path, Cause: err}
	}
	committed = true
	return nil
}

// MakeDir creates a directory and any missing parents. Existing directories are not an error.
func (f *OSFileSystem) MakeDir(path string) error {
	if err := os.MkdirAll(path, defaultDirMode); err != nil {
		return &OpError{Op: "mkdir", Path: path, Cause: err}
	}
	return nil
}

// ListDir returns the names of the directory entries, sorted.
func (f *OSFileSystem) ListDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, &OpError{Op: "list", Path: path, Cause: err}
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
