package file

// fileReader defines the filesystem operation needed for reading files.
type fileReader interface {
	ReadFile(path string) (string, error)
}

// fileWriter defines the filesystem operation needed for writing files.
type fileWriter interface {
	WriteFile(path, content string) error
}
