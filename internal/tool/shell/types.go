package shell

// ShellRequest is the argument object of execute_shell.
type ShellRequest struct {
	Command *string `json:"command"`
}

// Validate reports missing required arguments.
func (r *ShellRequest) Validate() error {
	if r.Command == nil {
		return ErrCommandRequired
	}
	return nil
}

// Description is the raw command line; it is also what the whitelist is matched against.
func (r *ShellRequest) Description() string {
	if r.Command == nil {
		return ""
	}
	return *r.Command
}
