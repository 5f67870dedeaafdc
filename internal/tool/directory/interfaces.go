package directory

// dirMaker defines the filesystem operation needed to create directories.
type dirMaker interface {
	MakeDir(path string) error
}

// dirLister defines the filesystem operation needed to list directories.
type dirLister interface {
	ListDir(path string) ([]string, error)
}
