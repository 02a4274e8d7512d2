// Package reader defines the content-reading port shared by every bobbin
// backend: a single Read operation that resolves a path against a backing
// source and returns the bytes stored there.
//
// The package itself ships the variants with no external dependencies:
// Local (a root directory on disk), Transparent (identity) and InMem (a
// seeded map for tests). Variants that delegate to a client SDK live in
// subpackages (s3reader, githubreader, gitreader, redisreader, pgreader) so
// importing the core contract never drags in an SDK you don't use. Every
// variant holds only its construction arguments and performs at most one I/O
// call per Read; selection between them is plain constructor injection by
// the caller.
package reader

import "context"

// Reader is the port implemented by every content source. Read resolves path
// against the variant's backing store and returns the exact bytes found
// there. What a path means is variant-specific: a relative file path, an
// object key, a repository-relative path, or an arbitrary value passed
// through untouched.
//
// Errors are the underlying client's errors, annotated with operation
// context via %w wrapping and never retried, translated or classified.
// Callers can inspect them with errors.Is / errors.As as if the client had
// been called directly.
type Reader interface {
	Read(ctx context.Context, path string) ([]byte, error)
}
