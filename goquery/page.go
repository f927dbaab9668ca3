package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jsxcorpus"
)

var _ jsxcorpus.PageParser = (*PageParser)(nil)

// PageParser captures the title, the selected markup and the same-host
// links of a fetched page.
type PageParser struct{}

// NewPageParser creates a new PageParser.
func NewPageParser() *PageParser {
	return &PageParser{}
}

// ParsePage implements jsxcorpus.PageParser.
func (p *PageParser) ParsePage(body, pageURL, selector string) (*jsxcorpus.Page, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, jsxcorpus.Errorf(jsxcorpus.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, jsxcorpus.Errorf(jsxcorpus.EMARKUP, "failed to parse HTML: %v", err)
	}

	page := &jsxcorpus.Page{
		Title: doc.Find("title").First().Text(),
		HTML:  body,
		Links: ExtractLinks(doc, base),
	}

	if selector != "" {
		page.HTML = jsxcorpus.NotFound
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			outer, err := goquery.OuterHtml(sel)
			if err != nil {
				return nil, jsxcorpus.Errorf(jsxcorpus.EMARKUP, "failed to render selection: %v", err)
			}
			page.HTML = outer
		}
	}

	return page, nil
}

// ExtractLinks returns the same-host links of doc resolved against base.
// Links are deduplicated and keep the order of first occurrence.
func ExtractLinks(doc *goquery.Document, base *url.URL) []string {
	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		// Skip non-HTTP links (javascript:, mailto:, etc.)
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		// Filter external links (exact host match, subdomains are filtered)
		if !isSameHost(base, resolved) {
			return
		}

		if seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})

	return links
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// points back at the base page. Fragments are stripped.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base URL.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
