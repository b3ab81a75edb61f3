package tmpdir

import "os"

// New creates a unique temporary directory for a single unit of work.
//
// If baseDir is empty, the directory is created under the system temp root.
// Otherwise baseDir is created if missing and the new directory is a unique
// subdirectory inside it.
//
// cleanup recursively removes the created directory. Removal is best-effort:
// failures are swallowed, the base directory itself is never touched, and
// calling cleanup more than once is safe.
func New(baseDir, prefix string) (dir string, cleanup func(), err error) {
	if prefix == "" {
		prefix = "pipeline-tools"
	}
	if baseDir != "" {
		if err := os.MkdirAll(baseDir, 0o755); err != nil {
			return "", nil, err
		}
	}
	d, err := os.MkdirTemp(baseDir, prefix+"-")
	if err != nil {
		return "", nil, err
	}
	return d, func() { _ = os.RemoveAll(d) }, nil
}

// With creates a temporary directory, runs fn with its path, and removes the
// directory afterwards no matter how fn exits (normal return, error, panic).
//
// An error creating the directory is returned before fn runs; fn's own error
// is returned unchanged.
func With(baseDir, prefix string, fn func(dir string) error) error {
	dir, cleanup, err := New(baseDir, prefix)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(dir)
}
