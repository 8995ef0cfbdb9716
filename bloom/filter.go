// Package bloom provides a probabilistic set of spell names, used to skip
// store lookups for names that were never imported.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// DefaultFalsePositiveRate is the rate used when sizing name filters.
const DefaultFalsePositiveRate = 0.01

// Filter wraps a Bloom filter keyed by case-folded spell name.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected names
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(max(n, 1), fpRate),
	}
}

// Add adds a name to the filter.
func (f *Filter) Add(name string) {
	f.f.AddString(key(name))
}

// Test returns true if the name might be in the filter, ignoring case.
// False positives are possible; false negatives are not.
func (f *Filter) Test(name string) bool {
	return f.f.TestString(key(name))
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
