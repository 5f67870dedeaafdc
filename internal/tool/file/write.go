package file

import (
	"context"

	"github.com/Cyclone1070/aish/internal/tool"
)

// WriteSuccess is the tool result after a successful write.
const WriteSuccess = "File written successfully"

// WriteFileTool creates or replaces a file.
type WriteFileTool struct {
	fileOps fileWriter
}

// NewWriteFileTool creates a new WriteFileTool with injected dependencies.
func NewWriteFileTool(fileOps fileWriter) *WriteFileTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	return &WriteFileTool{fileOps: fileOps}
}

func (t *WriteFileTool) Name() tool.Name {
	return tool.NameWriteFile
}

func (t *WriteFileTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        string(tool.NameWriteFile),
		Description: "Write content to a file",
		Parameters: tool.StringParams(
			[]string{"path", "content"},
			map[string]string{
				"path":    "Relative path to the file",
				"content": "Content to write",
			},
		),
	}
}

func (t *WriteFileTool) Input() any {
	return &WriteFileRequest{}
}

// Execute writes the content, creating parent directories as needed.
func (t *WriteFileTool) Execute(ctx context.Context, input any) (string, error) {
	req := input.(*WriteFileRequest)
	if err := req.Validate(); err != nil {
		return "", err
	}
	if err := t.fileOps.WriteFile(*req.Path, *req.Content); err != nil {
		return "", err
	}
	return WriteSuccess, nil
}
