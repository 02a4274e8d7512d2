package reader

import (
	"context"
	"fmt"
	"io/fs"
	"sync"
)

// Compile-time check: *InMem implements Reader.
var _ Reader = (*InMem)(nil)

// InMem is an in-memory Reader for unit tests of code that consumes the
// port. A missing path fails with an error wrapping fs.ErrNotExist, so
// consumers can branch the same way they would against Local.
type InMem struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewInMem creates an empty InMem reader.
func NewInMem() *InMem {
	return &InMem{files: make(map[string][]byte)}
}

// SetFile seeds or replaces the content at path.
func (m *InMem) SetFile(path string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = content
}

// Read returns a copy of the seeded content at path.
func (m *InMem) Read(_ context.Context, path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", path, fs.ErrNotExist)
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out, nil
}
