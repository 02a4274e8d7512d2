// Package s3reader implements the reader port on top of an S3 bucket using
// aws-sdk-go-v2. The client is caller-supplied and already configured;
// credentials, region and endpoint are never handled here.
package s3reader

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tilsley/bobbin/pkg/reader"
)

// Client is the slice of the S3 API the reader depends on. *s3.Client
// satisfies it; tests substitute a stub.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Compile-time checks: *s3.Client satisfies Client, *Reader satisfies the port.
var (
	_ Client        = (*s3.Client)(nil)
	_ reader.Reader = (*Reader)(nil)
)

// Reader reads objects from a single bucket. The path passed to Read is used
// as the object key, unmodified.
type Reader struct {
	client Client
	bucket string
}

// New creates a Reader over the given bucket using the caller-supplied client.
func New(client Client, bucket string) *Reader {
	return &Reader{client: client, bucket: bucket}
}

// Read issues one GetObject for (bucket, path) and returns the body bytes.
// Client errors (missing key, auth failure, network) surface unchanged, so
// *types.NoSuchKey stays detectable through errors.As.
func (r *Reader) Read(ctx context.Context, path string) ([]byte, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return nil, fmt.Errorf("get object s3://%s/%s: %w", r.bucket, path, err)
	}
	defer func() { //nolint:errcheck // body close errors are non-actionable after reading
		_ = out.Body.Close()
	}()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object body s3://%s/%s: %w", r.bucket, path, err)
	}
	return data, nil
}
