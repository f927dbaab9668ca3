package jsxcorpus

import (
	"context"
	"strings"
)

// File naming for transformed pairs.
const (
	InputSuffix  = "_input"
	OutputSuffix = "_output"
	TemplateExt  = ".jsx"
	DatasetFile  = "output.jsonl"
)

// InputFileName returns the file name of the input side of a pair.
func InputFileName(slug string) string {
	return slug + InputSuffix + TemplateExt
}

// OutputFileName returns the file name of the output side of a pair.
func OutputFileName(slug string) string {
	return slug + OutputSuffix + TemplateExt
}

// PairSlug returns the slug of an output file name and whether name is
// one. Input files and unrelated files return false.
func PairSlug(name string) (string, bool) {
	suffix := OutputSuffix + TemplateExt
	if !strings.HasSuffix(name, suffix) || len(name) == len(suffix) {
		return "", false
	}
	return strings.TrimSuffix(name, suffix), true
}

// Budgets bounds each output unit. Zero values are unbounded.
type Budgets struct {
	MaxTokens int   `json:"maxTokens"`
	MaxBytes  int64 `json:"maxBytes"`
}

// Validate returns an error if a budget is negative.
func (b Budgets) Validate() error {
	if b.MaxTokens < 0 {
		return Errorf(EINVALID, "max tokens must not be negative")
	}
	if b.MaxBytes < 0 {
		return Errorf(EINVALID, "max bytes must not be negative")
	}
	return nil
}

// ExceedsTokens reports whether n tokens exceed the token budget.
func (b Budgets) ExceedsTokens(n int) bool {
	return b.MaxTokens > 0 && n > b.MaxTokens
}

// ExceedsBytes reports whether n bytes exceed the byte budget.
func (b Budgets) ExceedsBytes(n int64) bool {
	return b.MaxBytes > 0 && n > b.MaxBytes
}

// UnitStore allocates output units. Units are numbered from 1 in
// allocation order and are never revisited once committed.
type UnitStore interface {
	CreateUnit(ctx context.Context) (UnitWriter, error)
}

// UnitWriter writes the files of one output unit with atomic semantics.
// WriteFile writes to a pending location; Commit makes the unit visible;
// Abort discards everything written so far.
type UnitWriter interface {
	// Name returns the unit's directory name, e.g. "mayoclinic-3".
	Name() string

	// WriteFile writes one file of the unit. It is safe for concurrent use
	// with distinct names.
	WriteFile(ctx context.Context, name string, content string) error

	Commit() error
	Abort() error
}
