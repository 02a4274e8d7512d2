// Package githubreader implements the reader port against the GitHub
// repository contents API using go-github.
//
// The Reader holds an already-authenticated client plus the owner/repo it is
// bound to; building that client is the caller's concern (the NewTokenClient
// and NewAppClient helpers cover the two common cases). Content comes back
// from the API base64-encoded and is decoded before being returned.
package githubreader

import (
	"context"
	"fmt"

	gogithub "github.com/google/go-github/v75/github"

	"github.com/tilsley/bobbin/pkg/reader"
)

var _ reader.Reader = (*Reader)(nil)

// Reader reads files from a single hosted repository at its default branch.
type Reader struct {
	gh    *gogithub.Client
	owner string
	repo  string
}

// New creates a Reader over owner/repo using the supplied client. The client
// carries whatever authentication it was built with; the Reader adds none.
func New(gh *gogithub.Client, owner, repo string) *Reader {
	return &Reader{gh: gh, owner: owner, repo: repo}
}

// Read fetches the content object at path and returns its decoded payload.
// API errors, including 404s as *github.ErrorResponse, are wrapped and
// returned as-is.
func (r *Reader) Read(ctx context.Context, path string) ([]byte, error) {
	fc, _, _, err := r.gh.Repositories.GetContents(ctx, r.owner, r.repo, path, nil)
	if err != nil {
		return nil, fmt.Errorf("get contents %s/%s/%s: %w", r.owner, r.repo, path, err)
	}
	if fc == nil {
		return nil, fmt.Errorf("get contents %s/%s/%s: path is a directory", r.owner, r.repo, path)
	}

	content, err := fc.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode contents %s/%s/%s: %w", r.owner, r.repo, path, err)
	}
	return []byte(content), nil
}
