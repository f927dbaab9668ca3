package jsxcorpus

import (
	"context"
	"regexp"
	"strings"
)

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// URLFrontier manages a crawl queue with deduplication.
type URLFrontier interface {
	// Push adds a URL to the frontier.
	// Returns false if the URL has already been seen.
	Push(url string) bool

	// Pop returns the next URL in discovery order.
	// Returns false if the frontier is empty.
	Pop() (string, bool)

	// Len returns the number of URLs in the queue.
	Len() int
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}

// NewGlobFilter compiles include and exclude globs into a URLFilter.
// "**" matches any run of characters, "*" any run without "/", "?" one
// character other than "/". Everything else matches literally.
func NewGlobFilter(include, exclude []string) (*URLFilter, error) {
	f := &URLFilter{}
	for _, g := range include {
		re, err := CompileGlob(g)
		if err != nil {
			return nil, err
		}
		f.Include = append(f.Include, re)
	}
	for _, g := range exclude {
		re, err := CompileGlob(g)
		if err != nil {
			return nil, err
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}

// CompileGlob converts a URL glob into an anchored regular expression.
func CompileGlob(glob string) (*regexp.Regexp, error) {
	if glob == "" {
		return nil, Errorf(EINVALID, "empty URL glob")
	}

	var sb strings.Builder
	sb.WriteString("^")
	runes := []rune(glob)
	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				sb.WriteString(".*")
				i++
			} else {
				sb.WriteString("[^/]*")
			}
		case '?':
			sb.WriteString("[^/]")
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, Errorf(EINVALID, "invalid URL glob %q: %v", glob, err)
	}
	return re, nil
}

// Page is a fetched page reduced to what a crawl stores and follows.
type Page struct {
	Title string
	HTML  string

	// Links holds same-host absolute URLs in document order, without
	// fragments and without duplicates.
	Links []string
}

// PageParser captures the record content and outgoing links of a page.
type PageParser interface {
	// ParsePage parses body fetched from pageURL. HTML is the outer HTML of
	// the first element matching selector, the whole body when selector is
	// empty, and NotFound when nothing matches.
	ParsePage(body, pageURL, selector string) (*Page, error)
}

// NotFound is the captured HTML of a page whose selector matched nothing.
const NotFound = "not-found"
