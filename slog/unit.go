package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/jsxcorpus"
)

// Compile-time interface verification.
var (
	_ jsxcorpus.UnitStore  = (*LoggingUnitStore)(nil)
	_ jsxcorpus.UnitWriter = (*loggingUnit)(nil)
)

// LoggingUnitStore wraps a UnitStore so that every unit it creates logs
// its lifecycle.
type LoggingUnitStore struct {
	next   jsxcorpus.UnitStore
	logger *slog.Logger
}

// NewLoggingUnitStore creates a new LoggingUnitStore.
func NewLoggingUnitStore(next jsxcorpus.UnitStore, logger *slog.Logger) *LoggingUnitStore {
	return &LoggingUnitStore{next: next, logger: logger}
}

// CreateUnit delegates to the wrapped store and wraps the returned unit.
func (s *LoggingUnitStore) CreateUnit(ctx context.Context) (jsxcorpus.UnitWriter, error) {
	unit, err := s.next.CreateUnit(ctx)
	if err != nil {
		s.logger.Info("unit create", "err", err)
		return nil, err
	}
	s.logger.Info("unit create", "unit", unit.Name())
	return &loggingUnit{next: unit, logger: s.logger.With("unit", unit.Name()), begin: time.Now()}, nil
}

type loggingUnit struct {
	next   jsxcorpus.UnitWriter
	logger *slog.Logger
	begin  time.Time
}

func (u *loggingUnit) Name() string {
	return u.next.Name()
}

func (u *loggingUnit) WriteFile(ctx context.Context, name string, content string) (err error) {
	defer func() {
		u.logger.Debug("unit write", "file", name, "bytes", len(content), "err", err)
	}()
	return u.next.WriteFile(ctx, name, content)
}

func (u *loggingUnit) Commit() (err error) {
	defer func() {
		u.logger.Info("unit commit", "duration", time.Since(u.begin), "err", err)
	}()
	return u.next.Commit()
}

func (u *loggingUnit) Abort() (err error) {
	defer func() {
		u.logger.Info("unit abort", "duration", time.Since(u.begin), "err", err)
	}()
	return u.next.Abort()
}
