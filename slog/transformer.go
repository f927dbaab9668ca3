package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/jsxcorpus"
)

// Ensure LoggingTransformer implements jsxcorpus.MarkupTransformer.
var _ jsxcorpus.MarkupTransformer = (*LoggingTransformer)(nil)

// LoggingTransformer wraps a MarkupTransformer with logging.
type LoggingTransformer struct {
	next   jsxcorpus.MarkupTransformer
	logger *slog.Logger
}

// NewLoggingTransformer creates a new LoggingTransformer.
func NewLoggingTransformer(next jsxcorpus.MarkupTransformer, logger *slog.Logger) *LoggingTransformer {
	return &LoggingTransformer{next: next, logger: logger}
}

// Transform delegates to the wrapped transformer and logs sizes and the
// error code of a failure.
func (t *LoggingTransformer) Transform(html string, spec jsxcorpus.TransformSpec) (out string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"component", spec.Component,
			"in_bytes", len(html),
			"out_bytes", len(out),
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", jsxcorpus.ErrorCode(err), "err", err)
		}
		t.logger.Info("transform", attrs...)
	}(time.Now())
	return t.next.Transform(html, spec)
}
