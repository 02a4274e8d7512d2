// Package gitreader implements the reader port over the working tree of a
// locally cloned git repository, using go-git.
//
// Reads go through the worktree filesystem, so they see the checkout as it
// is on disk, including uncommitted modifications. Cloning is the caller's
// concern; the Clone helper covers the common case.
package gitreader

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"

	"github.com/tilsley/bobbin/pkg/reader"
)

var _ reader.Reader = (*Reader)(nil)

// Reader reads files from the working tree of an open repository.
type Reader struct {
	repo *git.Repository
}

// New creates a Reader over an already-open repository. Obtain one with
// git.PlainOpen, git.PlainCloneContext, or Clone.
func New(repo *git.Repository) *Reader {
	return &Reader{repo: repo}
}

// Read returns the contents of path, relative to the worktree root. Bare
// repositories have no worktree and always fail with
// git.ErrIsBareRepository.
func (r *Reader) Read(_ context.Context, path string) ([]byte, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("resolve worktree: %w", err)
	}

	f, err := wt.Filesystem.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open worktree file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only handle, close error not actionable

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read worktree file %s: %w", path, err)
	}
	return data, nil
}

// Clone clones url into dir and returns the repository, ready for New. url
// may be anything go-git's transports accept, including a local path.
func Clone(ctx context.Context, url, dir string) (*git.Repository, error) {
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{URL: url})
	if err != nil {
		return nil, fmt.Errorf("clone %s: %w", url, err)
	}
	return repo, nil
}
