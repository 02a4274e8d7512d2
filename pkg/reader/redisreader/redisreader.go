// Package redisreader implements the reader port over Redis string values,
// treating the path as the key.
package redisreader

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tilsley/bobbin/pkg/reader"
)

var _ reader.Reader = (*Reader)(nil)

// Reader reads values from a single Redis database. A missing key fails with
// an error wrapping redis.Nil, so callers can branch with errors.Is.
type Reader struct {
	rdb *redis.Client
}

// New creates a Reader over the caller-supplied client. Connection options,
// pooling, and credentials all live in the client.
func New(rdb *redis.Client) *Reader {
	return &Reader{rdb: rdb}
}

// Read returns the value stored at key path.
func (r *Reader) Read(ctx context.Context, path string) ([]byte, error) {
	val, err := r.rdb.Get(ctx, path).Bytes()
	if err != nil {
		return nil, fmt.Errorf("get key %q: %w", path, err)
	}
	return val, nil
}
