// Package bloom provides probabilistic set membership for URL deduplication.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks seen URLs with a fixed memory budget. False positives are
// possible (a URL may be reported seen when it was not); false negatives
// are not.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs at the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add marks a URL as seen.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether the URL may have been added.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs added so far.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
