package directory

// -- Make Directory --

type MakeDirRequest struct {
	Path *string `json:"path"`
}

func (r *MakeDirRequest) Validate() error {
	if r.Path == nil {
		return ErrPathRequired
	}
	return nil
}

func (r *MakeDirRequest) TargetPath() string {
	return deref(r.Path)
}

func (r *MakeDirRequest) Description() string {
	return "Create directory: " + deref(r.Path)
}

// -- List Directory --

type ListDirRequest struct {
	Path *string `json:"path"`
}

func (r *ListDirRequest) Validate() error {
	if r.Path == nil {
		return ErrPathRequired
	}
	return nil
}

func (r *ListDirRequest) TargetPath() string {
	return deref(r.Path)
}

func (r *ListDirRequest) Description() string {
	return "List directory: " + deref(r.Path)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
