// Package export partitions a stream of crawled records into output units
// under token and byte budgets and writes each record as a pair of
// component templates.
package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/jsxcorpus"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of records transformed at once during
// a flush when Accumulator.Concurrency is not set.
const DefaultConcurrency = 10

// Accumulator groups records into batches and flushes every batch to a
// fresh output unit. It is not safe for concurrent use; records must be
// added in arrival order.
type Accumulator struct {
	Units       jsxcorpus.UnitStore
	Transformer jsxcorpus.MarkupTransformer
	Tokens      jsxcorpus.TokenCounter
	Profiles    jsxcorpus.Profiles
	Budgets     jsxcorpus.Budgets
	Policy      jsxcorpus.ErrorPolicy
	Concurrency int
	Progress    ProgressFunc

	batch  batch
	result Result
}

// batch is the current, not yet flushed, group of records.
type batch struct {
	items  []*jsxcorpus.Record
	tokens int
	bytes  int64
}

// Pending describes the current batch.
type Pending struct {
	Items  int
	Tokens int
	Bytes  int64
}

// Result holds the outcome of an export.
type Result struct {
	Units   []string
	Records int
	Skipped int
	Bytes   int64
	Tokens  int
}

// EventType indicates the type of progress event.
type EventType int

const (
	// EventUnitWritten reports a committed unit.
	EventUnitWritten EventType = iota
	// EventRecordSkipped reports a record left out under SkipOnError.
	EventRecordSkipped
)

// Event reports progress during an export.
type Event struct {
	Type  EventType
	Unit  string
	Items int
	URL   string
	Error error
}

// ProgressFunc is a callback for reporting export progress.
type ProgressFunc func(event Event)

// Add accounts for rec and appends it to the current batch, flushing the
// batch when a budget is exceeded.
//
// When rec would push the batch over the token budget, the batch is
// flushed first and rec starts the next batch carrying half of its own
// estimate. The halving is a heuristic that keeps a single oversized
// record from forcing a flush on every following record; it is not an
// exact cost model. The byte budget is checked after every record,
// independently of the token budget.
func (a *Accumulator) Add(ctx context.Context, rec *jsxcorpus.Record) error {
	serialized, err := rec.Canonical()
	if err != nil {
		return fmt.Errorf("serialize record %s: %w", rec.URL, err)
	}
	size := int64(len(serialized))
	tokens, err := a.Tokens.CountTokens(ctx, serialized)
	if err != nil {
		return fmt.Errorf("count tokens for %s: %w", rec.URL, err)
	}

	a.result.Bytes += size
	a.result.Tokens += tokens

	if a.Budgets.ExceedsTokens(a.batch.tokens + tokens) {
		if len(a.batch.items) > 0 {
			if err := a.flush(ctx); err != nil {
				return err
			}
		}
		a.batch.items = append(a.batch.items, rec)
		a.batch.tokens = tokens / 2
	} else {
		a.batch.items = append(a.batch.items, rec)
		a.batch.tokens += tokens
	}

	a.batch.bytes += size
	if a.Budgets.ExceedsBytes(a.batch.bytes) {
		return a.flush(ctx)
	}
	return nil
}

// Close flushes the final partial batch and returns the export result.
func (a *Accumulator) Close(ctx context.Context) (*Result, error) {
	if err := a.flush(ctx); err != nil {
		return nil, err
	}
	result := a.result
	return &result, nil
}

// Pending returns a snapshot of the current batch.
func (a *Accumulator) Pending() Pending {
	return Pending{
		Items:  len(a.batch.items),
		Tokens: a.batch.tokens,
		Bytes:  a.batch.bytes,
	}
}

// Run adds every record of src in order and flushes the final batch.
// When src or Add fails, the records batched so far are flushed before
// the error is returned.
func (a *Accumulator) Run(ctx context.Context, src jsxcorpus.RecordSource) (*Result, error) {
	var addErr error
	err := src.WalkRecords(ctx, func(rec *jsxcorpus.Record) error {
		if err := a.Add(ctx, rec); err != nil {
			addErr = err
			return err
		}
		return nil
	})
	if addErr != nil {
		if ferr := a.flush(context.WithoutCancel(ctx)); ferr != nil {
			return nil, errors.Join(addErr, ferr)
		}
		return nil, addErr
	}
	if err != nil {
		ferr := a.flush(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("read records: %w", errors.Join(err, ferr))
	}
	return a.Close(ctx)
}

// flush writes the current batch to a new unit and resets the batch.
// The batch is reset even when the flush fails.
func (a *Accumulator) flush(ctx context.Context) error {
	items := a.batch.items
	a.batch = batch{}
	if len(items) == 0 {
		return nil
	}

	unit, err := a.Units.CreateUnit(ctx)
	if err != nil {
		return fmt.Errorf("create unit: %w", err)
	}

	// Slugs are assigned sequentially so duplicates are numbered in input
	// order regardless of which write finishes first.
	slugger := jsxcorpus.NewSlugger()
	slugs := make([]string, len(items))
	for i, rec := range items {
		slugs[i] = slugger.Slug(rec.Title, fallbackSlug(rec.URL))
	}

	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	skipped := make([]error, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, rec := range items {
		g.Go(func() error {
			input, output, err := a.transformPair(rec)
			if err != nil {
				err = fmt.Errorf("transform %s: %w", rec.URL, err)
				if a.Policy == jsxcorpus.SkipOnError {
					skipped[i] = err
					return nil
				}
				return err
			}
			if err := unit.WriteFile(gctx, jsxcorpus.InputFileName(slugs[i]), input); err != nil {
				return fmt.Errorf("write %s: %w", rec.URL, err)
			}
			if err := unit.WriteFile(gctx, jsxcorpus.OutputFileName(slugs[i]), output); err != nil {
				return fmt.Errorf("write %s: %w", rec.URL, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		_ = unit.Abort()
		return err
	}

	written := 0
	for i, err := range skipped {
		if err == nil {
			written++
			continue
		}
		a.result.Skipped++
		a.report(Event{Type: EventRecordSkipped, URL: items[i].URL, Error: err})
	}

	if written == 0 {
		return unit.Abort()
	}
	if err := unit.Commit(); err != nil {
		_ = unit.Abort()
		return fmt.Errorf("commit unit %s: %w", unit.Name(), err)
	}

	a.result.Units = append(a.result.Units, unit.Name())
	a.result.Records += written
	a.report(Event{Type: EventUnitWritten, Unit: unit.Name(), Items: written})
	return nil
}

// transformPair renders both sides of a training pair for rec.
func (a *Accumulator) transformPair(rec *jsxcorpus.Record) (input, output string, err error) {
	input, err = a.Transformer.Transform(rec.HTML, a.Profiles.Input.Spec(rec.Title))
	if err != nil {
		return "", "", err
	}
	output, err = a.Transformer.Transform(rec.HTML, a.Profiles.Output.Spec(rec.Title))
	if err != nil {
		return "", "", err
	}
	return input, output, nil
}

func (a *Accumulator) report(event Event) {
	if a.Progress != nil {
		a.Progress(event)
	}
}

// fallbackSlug names the files of a record whose title has no slug
// characters.
func fallbackSlug(url string) string {
	return fmt.Sprintf("page-%x", xxhash.Sum64String(url))
}
