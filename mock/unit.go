package mock

import (
	"context"

	"github.com/fwojciec/jsxcorpus"
)

// Compile-time interface verification.
var (
	_ jsxcorpus.UnitStore  = (*UnitStore)(nil)
	_ jsxcorpus.UnitWriter = (*UnitWriter)(nil)
)

// UnitStore is a mock implementation of jsxcorpus.UnitStore.
type UnitStore struct {
	CreateUnitFn func(ctx context.Context) (jsxcorpus.UnitWriter, error)
}

func (s *UnitStore) CreateUnit(ctx context.Context) (jsxcorpus.UnitWriter, error) {
	return s.CreateUnitFn(ctx)
}

// UnitWriter is a mock implementation of jsxcorpus.UnitWriter.
type UnitWriter struct {
	NameFn      func() string
	WriteFileFn func(ctx context.Context, name string, content string) error
	CommitFn    func() error
	AbortFn     func() error
}

func (w *UnitWriter) Name() string {
	return w.NameFn()
}

func (w *UnitWriter) WriteFile(ctx context.Context, name string, content string) error {
	return w.WriteFileFn(ctx, name, content)
}

func (w *UnitWriter) Commit() error {
	return w.CommitFn()
}

func (w *UnitWriter) Abort() error {
	return w.AbortFn()
}
