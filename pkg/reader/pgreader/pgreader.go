// Package pgreader implements the reader port over a PostgreSQL table keyed
// by path.
//
// The table is as caller-owned as the pool: it needs a unique path column
// and a content column (bytea or text), and the library creates no schema
// and runs no migrations against it.
package pgreader

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tilsley/bobbin/pkg/reader"
)

var _ reader.Reader = (*Reader)(nil)

// Reader reads rows from one table through a caller-supplied pool. A missing
// row fails with an error wrapping pgx.ErrNoRows.
type Reader struct {
	pool  *pgxpool.Pool
	table string
	query string
}

// New creates a Reader selecting from table. The name is treated as a single
// unqualified identifier and quoted accordingly; the connection's search
// path decides which schema it resolves in.
func New(pool *pgxpool.Pool, table string) *Reader {
	return &Reader{
		pool:  pool,
		table: table,
		query: fmt.Sprintf(`SELECT content FROM %s WHERE path = $1`, pgx.Identifier{table}.Sanitize()),
	}
}

// Read returns the content column of the row whose path column equals path.
func (r *Reader) Read(ctx context.Context, path string) ([]byte, error) {
	var content []byte
	if err := r.pool.QueryRow(ctx, r.query, path).Scan(&content); err != nil {
		return nil, fmt.Errorf("select %q from %s: %w", path, r.table, err)
	}
	return content, nil
}
