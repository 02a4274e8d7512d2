package reader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Compile-time check: *Local implements Reader.
var _ Reader = (*Local)(nil)

// Local reads files from a directory on the local filesystem. Paths are
// resolved relative to the configured root.
type Local struct {
	root string
}

// NewLocal creates a Local rooted at the given directory.
func NewLocal(root string) *Local {
	return &Local{root: root}
}

// Read returns the full contents of the file at root/path. Open and close are
// handled by os.ReadFile, so the handle is released on every exit path. A
// missing file surfaces the *fs.PathError from the OS, so
// errors.Is(err, fs.ErrNotExist) holds.
func (l *Local) Read(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.root, path))
	if err != nil {
		return nil, fmt.Errorf("read local file %s: %w", path, err)
	}
	return data, nil
}
