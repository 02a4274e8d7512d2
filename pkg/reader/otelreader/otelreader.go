// Package otelreader wraps any Reader with OpenTelemetry tracing and
// metrics. The variants themselves stay silent; callers opt in by wrapping:
//
//	r := otelreader.New(s3reader.New(client, bucket), "s3")
package otelreader

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/tilsley/bobbin/pkg/reader"
)

const instrName = "github.com/tilsley/bobbin"

var _ reader.Reader = (*Reader)(nil)

// Reader decorates another Reader with a span and read metrics per call. It
// never changes the bytes or the error of the wrapped Read.
type Reader struct {
	next   reader.Reader
	source string

	reads    metric.Int64Counter
	duration metric.Float64Histogram
}

// New wraps next. source names the underlying variant ("local", "s3", ...)
// and becomes the reader.source attribute on spans and metrics.
func New(next reader.Reader, source string) *Reader {
	m := otel.Meter(instrName)

	reads, _ := m.Int64Counter("bobbin.reads",
		metric.WithDescription("Number of reads, by source and outcome"))
	duration, _ := m.Float64Histogram("bobbin.read.duration",
		metric.WithDescription("Read duration in milliseconds"),
		metric.WithUnit("ms"))

	return &Reader{next: next, source: source, reads: reads, duration: duration}
}

// Read delegates to the wrapped Reader under a span named "Read".
func (r *Reader) Read(ctx context.Context, path string) ([]byte, error) {
	ctx, span := otel.Tracer(instrName).Start(ctx, "Read",
		trace.WithAttributes(
			attribute.String("reader.source", r.source),
			attribute.String("reader.path", path),
		),
	)
	defer span.End()

	start := time.Now()
	data, err := r.next.Read(ctx, path)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
	}
	attrs := metric.WithAttributes(
		attribute.String("reader.source", r.source),
		attribute.String("outcome", outcome),
	)
	r.reads.Add(ctx, 1, attrs)
	r.duration.Record(ctx, time.Since(start).Seconds()*1000, attrs)

	return data, err
}
