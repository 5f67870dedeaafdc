package file

import (
	"context"

	"github.com/Cyclone1070/aish/internal/tool"
)

// ReadFileTool returns the content of a file to the model.
type ReadFileTool struct {
	fileOps fileReader
}

// NewReadFileTool creates a new ReadFileTool with injected dependencies.
func NewReadFileTool(fileOps fileReader) *ReadFileTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	return &ReadFileTool{fileOps: fileOps}
}

func (t *ReadFileTool) Name() tool.Name {
	return tool.NameReadFile
}

func (t *ReadFileTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        string(tool.NameReadFile),
		Description: "Read the contents of a file",
		Parameters: tool.StringParams(
			[]string{"path"},
			map[string]string{"path": "Relative path to the file"},
		),
	}
}

func (t *ReadFileTool) Input() any {
	return &ReadFileRequest{}
}

// Execute reads the whole file.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *ReadFileTool) Execute(ctx context.Context, input any) (string, error) {
	req := input.(*ReadFileRequest)
	if err := req.Validate(); err != nil {
		return "", err
	}
	return t.fileOps.ReadFile(*req.Path)
}
