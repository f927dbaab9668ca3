package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/jsxcorpus"
	"github.com/fwojciec/jsxcorpus/dataset"
	"github.com/fwojciec/jsxcorpus/fs"
)

// Run executes the dataset command.
func (c *DatasetCmd) Run(deps *Dependencies) error {
	cfg := &jsxcorpus.Config{TokenCeiling: c.TokenCeiling}
	if err := cfg.ValidateDataset(); err != nil {
		return err
	}

	prompt, err := readSystemPrompt(c.SystemPromptFile)
	if err != nil {
		return err
	}

	gen := &dataset.Generator{
		Tokens:       deps.Tokens,
		SystemPrompt: prompt,
		Ceiling:      cfg.Ceiling(),
	}

	path := filepath.Join(c.Dir, jsxcorpus.DatasetFile)
	var result *dataset.Result
	if err := fs.WriteFileAtomic(path, func(w io.Writer) error {
		var err error
		result, err = gen.Generate(deps.Ctx, os.DirFS(c.Dir), w)
		return err
	}); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}

	for _, err := range result.Errors {
		fmt.Fprintf(deps.Stderr, "  skip: %v\n", err)
	}
	fmt.Fprintf(deps.Stdout, "Wrote %d examples to %s\n", result.Accepted, path)
	if result.Rejected > 0 {
		fmt.Fprintf(deps.Stdout, "Excluded %d pairs at or over %d tokens\n", result.Rejected, gen.Ceiling)
	}
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "Failed %d pairs\n", result.Failed)
	}
	return nil
}
