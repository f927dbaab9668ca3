package main

import (
	"fmt"

	"github.com/fwojciec/jsxcorpus"
	"github.com/fwojciec/jsxcorpus/crawl"
	"github.com/fwojciec/jsxcorpus/export"
)

// displayURLWidth bounds the URLs printed in crawl progress lines.
const displayURLWidth = 72

// Run executes the default pipeline.
func (c *RunCmd) Run(deps *Dependencies) error {
	cfg := c.config()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !c.NoCrawl {
		if err := crawlSite(deps, cfg); err != nil {
			return err
		}
	}
	return exportRecords(deps, cfg)
}

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	return crawlSite(deps, c.config())
}

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	cfg := c.config()
	if err := cfg.Validate(); err != nil {
		return err
	}
	return exportRecords(deps, cfg)
}

func crawlSite(deps *Dependencies, cfg *jsxcorpus.Config) error {
	fmt.Fprintf(deps.Stdout, "Crawling %s\n", cfg.URL)

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d] %s\n", event.Completed, crawl.TruncateURL(event.URL, displayURLWidth))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, cfg, progress)
	if err != nil {
		return fmt.Errorf("crawl: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages (%s)", result.Saved, crawl.FormatBytes(result.Bytes))
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, ", %d failed", result.Failed)
	}
	fmt.Fprintln(deps.Stdout)
	if result.Discovered > 0 {
		fmt.Fprintf(deps.Stdout, "Discovered %d unique URLs (dedup false positive rate %.4f%%)\n",
			result.Discovered, result.FalsePositiveRate*100)
	}
	return nil
}

func exportRecords(deps *Dependencies, cfg *jsxcorpus.Config) error {
	n, err := deps.Records.CountRecords(deps.Ctx)
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}
	fmt.Fprintf(deps.Stdout, "Found %d records\n", n)

	acc := &export.Accumulator{
		Units:       deps.Units(cfg.UnitBase()),
		Transformer: deps.Transformer,
		Tokens:      deps.Tokens,
		Profiles:    deps.Profiles,
		Budgets:     cfg.Budgets(),
		Policy:      cfg.Policy(),
		Concurrency: cfg.Concurrency,
		Progress: func(event export.Event) {
			switch event.Type {
			case export.EventUnitWritten:
				fmt.Fprintf(deps.Stdout, "Wrote %d items to %s\n", event.Items, event.Unit)
			case export.EventRecordSkipped:
				fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
			}
		},
	}

	result, err := acc.Run(deps.Ctx, deps.Records)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "Exported %d records to %d units (%s, %s)\n",
		result.Records, len(result.Units), crawl.FormatBytes(result.Bytes), crawl.FormatTokens(result.Tokens))
	if result.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d records\n", result.Skipped)
	}
	return nil
}
