// Package crawl walks a site from a start URL and stores every fetched page
// as a record for the export stage.
package crawl

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fwojciec/jsxcorpus"
)

// DefaultMaxPages caps a crawl whose config leaves maxPagesToCrawl unset.
const DefaultMaxPages = 1000

// Frontier sizing for the bloom filter used by a default frontier.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.001
)

// Crawler fetches pages breadth-first and appends one record per page.
// URLs are processed sequentially so the per-domain rate limit holds.
type Crawler struct {
	Fetcher     jsxcorpus.Fetcher
	Parser      jsxcorpus.PageParser
	Records     jsxcorpus.RecordWriter
	RateLimiter jsxcorpus.DomainLimiter

	// Frontier is optional; a bloom-backed Frontier is created per crawl
	// when nil.
	Frontier jsxcorpus.URLFrontier
}

// Result holds the outcome of a crawl.
type Result struct {
	Saved  int
	Failed int
	Bytes  int64

	// Discovered and FalsePositiveRate are filled in only when the crawl
	// used a bloom-backed Frontier.
	Discovered        uint
	FalsePositiveRate float64
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Queued    int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl starts at cfg.URL and stores pages until the frontier is empty or
// cfg.MaxPagesToCrawl pages have been attempted. A page that cannot be
// fetched or parsed is reported and skipped; a record that cannot be
// stored stops the crawl.
func (c *Crawler) Crawl(ctx context.Context, cfg *jsxcorpus.Config, progress ProgressFunc) (*Result, error) {
	if err := cfg.ValidateCrawl(); err != nil {
		return nil, err
	}
	filter, err := jsxcorpus.NewGlobFilter(cfg.Match, cfg.Exclude)
	if err != nil {
		return nil, err
	}

	maxPages := cfg.MaxPagesToCrawl
	if maxPages == 0 {
		maxPages = DefaultMaxPages
	}

	frontier := c.Frontier
	if frontier == nil {
		frontier = NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	}
	frontier.Push(cfg.URL)

	report := func(event ProgressEvent) {
		if progress != nil {
			progress(event)
		}
	}

	var result Result
	attempted := 0
	for attempted < maxPages {
		pageURL, ok := frontier.Pop()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return &result, err
		}
		attempted++

		report(ProgressEvent{Type: ProgressStarted, Completed: result.Saved, Queued: frontier.Len(), URL: pageURL})

		page, err := c.visit(ctx, pageURL, cfg.Selector)
		if err != nil {
			if ctx.Err() != nil {
				return &result, ctx.Err()
			}
			result.Failed++
			report(ProgressEvent{Type: ProgressFailed, URL: pageURL, Error: err})
			continue
		}

		rec := &jsxcorpus.Record{Title: page.Title, URL: pageURL, HTML: page.HTML}
		if err := c.Records.AppendRecord(ctx, rec); err != nil {
			return &result, fmt.Errorf("store %s: %w", pageURL, err)
		}
		result.Saved++
		result.Bytes += int64(len(page.HTML))

		for _, link := range page.Links {
			if filter.Match(link) {
				frontier.Push(link)
			}
		}

		report(ProgressEvent{Type: ProgressCompleted, Completed: result.Saved, Queued: frontier.Len(), URL: pageURL})
	}

	if f, ok := frontier.(*Frontier); ok {
		result.Discovered, result.FalsePositiveRate = f.Stats()
	}

	report(ProgressEvent{Type: ProgressFinished, Completed: result.Saved})
	return &result, nil
}

// visit rate-limits, fetches and parses a single page.
func (c *Crawler) visit(ctx context.Context, pageURL, selector string) (*jsxcorpus.Page, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, jsxcorpus.Errorf(jsxcorpus.EINVALID, "invalid URL %q: %v", pageURL, err)
	}
	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	body, err := c.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	page, err := c.Parser.ParsePage(body, pageURL, selector)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return page, nil
}
