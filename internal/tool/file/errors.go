package file

import (
	"errors"
)

var (
	ErrPathRequired            = errors.New("path is required")
	ErrContentRequiredForWrite = errors.New("content is required for write operation")
)
