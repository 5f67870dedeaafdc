package shell

import "errors"

var ErrCommandRequired = errors.New("command is required")
