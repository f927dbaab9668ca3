package mock

import (
	"context"

	"github.com/fwojciec/jsxcorpus"
)

var _ jsxcorpus.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of jsxcorpus.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ jsxcorpus.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of jsxcorpus.PageParser.
type PageParser struct {
	ParsePageFn func(body, pageURL, selector string) (*jsxcorpus.Page, error)
}

func (p *PageParser) ParsePage(body, pageURL, selector string) (*jsxcorpus.Page, error) {
	return p.ParsePageFn(body, pageURL, selector)
}
