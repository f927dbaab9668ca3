// Package dataset assembles the transformed pairs of an output unit into
// a newline-delimited conversational dataset.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/fwojciec/jsxcorpus"
)

// Generator converts the pairs of one unit directory into examples.
type Generator struct {
	Tokens jsxcorpus.TokenCounter

	// SystemPrompt is attached to every example. Empty uses
	// jsxcorpus.DefaultSystemPrompt.
	SystemPrompt string

	// Ceiling is the exclusive upper bound on a pair's combined token
	// estimate. Zero uses jsxcorpus.DefaultTokenCeiling.
	Ceiling int
}

// Result holds the outcome of a generation run.
type Result struct {
	Accepted int
	Rejected int
	Failed   int

	// Errors holds one error per failed pair, in listing order.
	Errors []error
}

// Generate scans fsys for "_output" files in lexicographic order, pairs
// each with its "_input" sibling and writes one JSON line to w for every
// pair whose combined estimate is strictly below the ceiling.
//
// A pair that cannot be read or counted is recorded in the result and the
// scan continues; a missing sibling is reported as EMISSINGPAIR. Only a
// failure to list fsys or to write to w stops the scan.
func (g *Generator) Generate(ctx context.Context, fsys fs.FS, w io.Writer) (*Result, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list unit: %w", err)
	}

	system := g.SystemPrompt
	if system == "" {
		system = jsxcorpus.DefaultSystemPrompt
	}
	ceiling := g.Ceiling
	if ceiling == 0 {
		ceiling = jsxcorpus.DefaultTokenCeiling
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	result := &Result{}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if e.IsDir() {
			continue
		}
		slug, ok := jsxcorpus.PairSlug(e.Name())
		if !ok {
			continue
		}

		input, output, tokens, err := g.readPair(ctx, fsys, slug)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, err)
			continue
		}
		if tokens >= ceiling {
			result.Rejected++
			continue
		}

		if err := enc.Encode(jsxcorpus.NewExample(system, input, output)); err != nil {
			return result, fmt.Errorf("write example %s: %w", slug, err)
		}
		result.Accepted++
	}
	return result, nil
}

// readPair reads both files of the pair named slug and estimates their
// combined token count.
func (g *Generator) readPair(ctx context.Context, fsys fs.FS, slug string) (input, output string, tokens int, err error) {
	inputName := jsxcorpus.InputFileName(slug)
	outputName := jsxcorpus.OutputFileName(slug)

	in, err := fs.ReadFile(fsys, inputName)
	if errors.Is(err, fs.ErrNotExist) {
		return "", "", 0, jsxcorpus.Errorf(jsxcorpus.EMISSINGPAIR, "%s has no matching %s", outputName, inputName)
	} else if err != nil {
		return "", "", 0, fmt.Errorf("read %s: %w", inputName, err)
	}
	out, err := fs.ReadFile(fsys, outputName)
	if err != nil {
		return "", "", 0, fmt.Errorf("read %s: %w", outputName, err)
	}

	tokens, err = g.Tokens.CountTokens(ctx, string(in)+string(out))
	if err != nil {
		return "", "", 0, fmt.Errorf("count tokens for %s: %w", slug, err)
	}
	return string(in), string(out), tokens, nil
}
