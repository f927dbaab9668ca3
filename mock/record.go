package mock

import (
	"context"

	"github.com/fwojciec/jsxcorpus"
)

// Compile-time interface verification.
var (
	_ jsxcorpus.RecordWriter = (*RecordWriter)(nil)
	_ jsxcorpus.RecordSource = (*RecordSource)(nil)
	_ jsxcorpus.RecordStore  = (*RecordStore)(nil)
)

// RecordWriter is a mock implementation of jsxcorpus.RecordWriter.
type RecordWriter struct {
	AppendRecordFn func(ctx context.Context, rec *jsxcorpus.Record) error
}

func (w *RecordWriter) AppendRecord(ctx context.Context, rec *jsxcorpus.Record) error {
	return w.AppendRecordFn(ctx, rec)
}

// RecordSource is a mock implementation of jsxcorpus.RecordSource.
type RecordSource struct {
	WalkRecordsFn func(ctx context.Context, fn func(*jsxcorpus.Record) error) error
}

func (s *RecordSource) WalkRecords(ctx context.Context, fn func(*jsxcorpus.Record) error) error {
	return s.WalkRecordsFn(ctx, fn)
}

// Records returns a RecordSource that yields recs in order.
func Records(recs ...*jsxcorpus.Record) *RecordSource {
	return &RecordSource{
		WalkRecordsFn: func(ctx context.Context, fn func(*jsxcorpus.Record) error) error {
			for _, r := range recs {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(r); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// RecordStore is a mock implementation of jsxcorpus.RecordStore.
type RecordStore struct {
	AppendRecordFn func(ctx context.Context, rec *jsxcorpus.Record) error
	WalkRecordsFn  func(ctx context.Context, fn func(*jsxcorpus.Record) error) error
	CountRecordsFn func(ctx context.Context) (int, error)
}

func (s *RecordStore) AppendRecord(ctx context.Context, rec *jsxcorpus.Record) error {
	return s.AppendRecordFn(ctx, rec)
}

func (s *RecordStore) WalkRecords(ctx context.Context, fn func(*jsxcorpus.Record) error) error {
	return s.WalkRecordsFn(ctx, fn)
}

func (s *RecordStore) CountRecords(ctx context.Context) (int, error) {
	return s.CountRecordsFn(ctx)
}
