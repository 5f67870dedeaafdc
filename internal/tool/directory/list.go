package directory

import (
	"context"
	"strings"

	"github.com/Cyclone1070/aish/internal/tool"
)

// ListDirTool returns the entry names of a directory, one per line.
type ListDirTool struct {
	fs dirLister
}

// NewListDirTool creates a new ListDirTool with injected dependencies.
func NewListDirTool(fs dirLister) *ListDirTool {
	if fs == nil {
		panic("fs is required")
	}
	return &ListDirTool{fs: fs}
}

func (t *ListDirTool) Name() tool.Name {
	return tool.NameListDir
}

func (t *ListDirTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        string(tool.NameListDir),
		Description: "List contents of a directory",
		Parameters: tool.StringParams(
			[]string{"path"},
			map[string]string{"path": "Relative path to the directory"},
		),
	}
}

func (t *ListDirTool) Input() any {
	return &ListDirRequest{}
}

func (t *ListDirTool) Execute(ctx context.Context, input any) (string, error) {
	req := input.(*ListDirRequest)
	if err := req.Validate(); err != nil {
		return "", err
	}
	names, err := t.fs.ListDir(*req.Path)
	if err != nil {
		return "", err
	}
	return strings.Join(names, "\n"), nil
}
