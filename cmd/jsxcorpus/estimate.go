package main

import (
	"fmt"
	"io"
	"os"
)

// Run executes the estimate command.
func (c *EstimateCmd) Run(deps *Dependencies) error {
	if len(c.Files) == 0 {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		n, err := deps.Tokens.CountTokens(deps.Ctx, string(data))
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, n)
		return nil
	}

	total := 0
	for _, name := range c.Files {
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		n, err := deps.Tokens.CountTokens(deps.Ctx, string(data))
		if err != nil {
			return fmt.Errorf("estimate %s: %w", name, err)
		}
		total += n
		fmt.Fprintf(deps.Stdout, "%d\t%s\n", n, name)
	}
	if len(c.Files) > 1 {
		fmt.Fprintf(deps.Stdout, "%d\ttotal\n", total)
	}
	return nil
}
