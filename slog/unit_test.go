package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/jsxcorpus"
	"github.com/fwojciec/jsxcorpus/mock"
	jsxslog "github.com/fwojciec/jsxcorpus/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockUnit(name string) *mock.UnitWriter {
	return &mock.UnitWriter{
		NameFn:      func() string { return name },
		WriteFileFn: func(context.Context, string, string) error { return nil },
		CommitFn:    func() error { return nil },
		AbortFn:     func() error { return errors.New("already gone") },
	}
}

func TestLoggingUnitStore(t *testing.T) {
	t.Parallel()

	t.Run("logs the unit lifecycle", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.UnitStore{
			CreateUnitFn: func(context.Context) (jsxcorpus.UnitWriter, error) {
				return newMockUnit("docs-1"), nil
			},
		}

		store := jsxslog.NewLoggingUnitStore(inner, logger)
		unit, err := store.CreateUnit(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "docs-1", unit.Name())

		require.NoError(t, unit.WriteFile(context.Background(), "a_input.jsx", "abc"))
		require.NoError(t, unit.Commit())

		output := buf.String()
		assert.Contains(t, output, `msg="unit create" unit=docs-1`)
		assert.Contains(t, output, `msg="unit write" unit=docs-1 file=a_input.jsx bytes=3`)
		assert.Contains(t, output, `msg="unit commit" unit=docs-1`)
	})

	t.Run("logs abort errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.UnitStore{
			CreateUnitFn: func(context.Context) (jsxcorpus.UnitWriter, error) {
				return newMockUnit("docs-2"), nil
			},
		}

		unit, err := jsxslog.NewLoggingUnitStore(inner, logger).CreateUnit(context.Background())
		require.NoError(t, err)

		err = unit.Abort()

		require.Error(t, err)
		assert.Contains(t, buf.String(), `msg="unit abort" unit=docs-2`)
		assert.Contains(t, buf.String(), `err="already gone"`)
	})

	t.Run("logs create failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.UnitStore{
			CreateUnitFn: func(context.Context) (jsxcorpus.UnitWriter, error) {
				return nil, errors.New("read-only")
			},
		}

		_, err := jsxslog.NewLoggingUnitStore(inner, logger).CreateUnit(context.Background())

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=read-only")
	})
}
