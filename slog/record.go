package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/jsxcorpus"
)

// Ensure LoggingRecordStore implements jsxcorpus.RecordStore.
var _ jsxcorpus.RecordStore = (*LoggingRecordStore)(nil)

// LoggingRecordStore wraps a RecordStore with logging.
type LoggingRecordStore struct {
	next   jsxcorpus.RecordStore
	logger *slog.Logger
}

// NewLoggingRecordStore creates a new LoggingRecordStore.
func NewLoggingRecordStore(next jsxcorpus.RecordStore, logger *slog.Logger) *LoggingRecordStore {
	return &LoggingRecordStore{next: next, logger: logger}
}

// AppendRecord delegates to the wrapped store and logs the record.
func (s *LoggingRecordStore) AppendRecord(ctx context.Context, rec *jsxcorpus.Record) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("record append",
			"url", rec.URL,
			"bytes", len(rec.HTML),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.AppendRecord(ctx, rec)
}

// WalkRecords delegates to the wrapped store and logs how many records
// were visited.
func (s *LoggingRecordStore) WalkRecords(ctx context.Context, fn func(*jsxcorpus.Record) error) (err error) {
	n := 0
	defer func(begin time.Time) {
		s.logger.Info("record walk",
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WalkRecords(ctx, func(rec *jsxcorpus.Record) error {
		n++
		return fn(rec)
	})
}

// CountRecords delegates to the wrapped store.
func (s *LoggingRecordStore) CountRecords(ctx context.Context) (int, error) {
	return s.next.CountRecords(ctx)
}
