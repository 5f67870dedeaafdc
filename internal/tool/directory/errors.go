package directory

import (
	"errors"
)

var ErrPathRequired = errors.New("path is required")
