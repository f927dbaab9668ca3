// Package bloom records visited crawl URLs in a fixed-size Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a set of URLs that may report false positives but never
// false negatives. It is not safe for concurrent use.
type Filter struct {
	f     *bloom.BloomFilter
	added uint
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Visit adds url and reports whether it was new. A false positive makes
// an unseen URL look visited.
func (f *Filter) Visit(url string) bool {
	if f.f.TestAndAddString(url) {
		return false
	}
	f.added++
	return true
}

// Test reports whether url may have been visited.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// Visited returns the number of URLs accepted as new by Visit.
func (f *Filter) Visited() uint {
	return f.added
}

// EstimatedFalsePositiveRate returns the filter's current false positive
// rate given the URLs visited so far.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	return bloom.EstimateFalsePositiveRate(f.f.Cap(), f.f.K(), f.added)
}
