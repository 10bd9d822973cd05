package ports

// CommandRunner abstracts running external commands.
// The reMarkable 2 probe uses it to locate the xochitl process.
type CommandRunner interface {
	// Output runs the named command and returns its standard output.
	// A non-zero exit status is an error.
	Output(name string, args ...string) ([]byte, error)
}
