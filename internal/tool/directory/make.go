package directory

import (
	"context"

	"github.com/Cyclone1070/aish/internal/tool"
)

// MakeSuccess is the tool result after a directory is created.
const MakeSuccess = "Directory created successfully"

// MakeDirTool creates a directory and its missing parents.
type MakeDirTool struct {
	fs dirMaker
}

// NewMakeDirTool creates a new MakeDirTool with injected dependencies.
func NewMakeDirTool(fs dirMaker) *MakeDirTool {
	if fs == nil {
		panic("fs is required")
	}
	return &MakeDirTool{fs: fs}
}

func (t *MakeDirTool) Name() tool.Name {
	return tool.NameMakeDir
}

func (t *MakeDirTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        string(tool.NameMakeDir),
		Description: "Create a directory",
		Parameters: tool.StringParams(
			[]string{"path"},
			map[string]string{"path": "Relative path to the directory"},
		),
	}
}

func (t *MakeDirTool) Input() any {
	return &MakeDirRequest{}
}

func (t *MakeDirTool) Execute(ctx context.Context, input any) (string, error) {
	req := input.(*MakeDirRequest)
	if err := req.Validate(); err != nil {
		return "", err
	}
	if err := t.fs.MakeDir(*req.Path); err != nil {
		return "", err
	}
	return MakeSuccess, nil
}
