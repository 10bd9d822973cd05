package ports

// FileSystem abstracts file system operations.
//
// The device prober reads sysfs and procfs entries through this interface,
// and the frame dump writes its artifacts through it, so tests can run
// without a real reMarkable attached.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating parent directories as needed.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)
}
