package file

// -- Read File --

type ReadFileRequest struct {
	Path *string `json:"path"`
}

func (r *ReadFileRequest) Validate() error {
	if r.Path == nil {
		return ErrPathRequired
	}
	return nil
}

// TargetPath is the path checked by the security gate.
func (r *ReadFileRequest) TargetPath() string {
	return deref(r.Path)
}

func (r *ReadFileRequest) Description() string {
	return "Read file: " + deref(r.Path)
}

// -- Write File --

// WriteFileRequest replaces a file's content. An empty Content is valid and truncates the file.
type WriteFileRequest struct {
	Path    *string `json:"path"`
	Content *string `json:"content"`
}

func (r *WriteFileRequest) Validate() error {
	if r.Path == nil {
		return ErrPathRequired
	}
	if r.Content == nil {
		return ErrContentRequiredForWrite
	}
	return nil
}

func (r *WriteFileRequest) TargetPath() string {
	return deref(r.Path)
}

func (r *WriteFileRequest) Description() string {
	return "Write file: " + deref(r.Path)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
