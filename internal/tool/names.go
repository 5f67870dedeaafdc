package tool

// Name identifies one of the tools exposed to the model.
// The set is closed: ParseName is the only way to turn model output into a Name.
type Name string

const (
	NameExecuteShell Name = "execute_shell"
	NameReadFile     Name = "fs_readfile"
	NameWriteFile    Name = "fs_writefile"
	NameMakeDir      Name = "fs_makedir"
	NameListDir      Name = "fs_listdir"
)

// Names lists every tool name in declaration order.
var Names = []Name{
	NameExecuteShell,
	NameReadFile,
	NameWriteFile,
	NameMakeDir,
	NameListDir,
}

// ParseName maps a raw tool name from the model onto the closed set.
func ParseName(s string) (Name, bool) {
	for _, n := range Names {
		if string(n) == s {
			return n, true
		}
	}
	return "", false
}

// Kind is an operation kind checked against the security permission table.
type Kind string

const (
	KindMakeDir   Kind = "fs.makedir"
	KindMakeFile  Kind = "fs.makefile"
	KindWriteFile Kind = "fs.writefile"
	KindReadFile  Kind = "fs.readfile"
	KindListDir   Kind = "fs.listdir"
	KindShell     Kind = "shell"
)

// Kinds lists every operation kind known to the permission table.
var Kinds = []Kind{
	KindMakeDir,
	KindMakeFile,
	KindWriteFile,
	KindReadFile,
	KindListDir,
	KindShell,
}

// Kind returns the operation kind a tool is validated against.
func (n Name) Kind() Kind {
	switch n {
	case NameExecuteShell:
		return KindShell
	case NameReadFile:
		return KindReadFile
	case NameWriteFile:
		return KindWriteFile
	case NameMakeDir:
		return KindMakeDir
	case NameListDir:
		return KindListDir
	default:
		return ""
	}
}
